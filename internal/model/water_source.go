package model

import (
	"fmt"
	"time"
)

// NewLocationName is shown for reports filed against an unregistered location.
const NewLocationName = "New location"

type WaterSource struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	Area          string       `json:"area,omitempty" yaml:"area,omitempty"`
	Status        SourceStatus `json:"status" yaml:"status"`
	Location      GeoPoint     `json:"location" yaml:"location"`
	LastCheckedAt time.Time    `json:"lastCheckedAt" yaml:"lastCheckedAt"`

	// OpenReportCount is filled on read from the report collection.
	OpenReportCount int `json:"openReportCount" yaml:"-"`
}

// AreaLabel is the grouping key used by the location chart.
func (s *WaterSource) AreaLabel() string {
	if s.Area != "" {
		return s.Area
	}
	return s.Name
}

func (s *WaterSource) Check() []string {
	var problems []string
	if s.ID == "" {
		problems = append(problems, "id is empty")
	}
	if s.ID == NewLocationSourceID {
		problems = append(problems, fmt.Sprintf("id %q is reserved", NewLocationSourceID))
	}
	if s.Name == "" {
		problems = append(problems, "name is empty")
	}
	if !s.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", s.Status))
	}
	if !s.Location.Valid() {
		problems = append(problems, "location is out of range")
	}
	return problems
}
