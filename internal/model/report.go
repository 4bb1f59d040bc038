package model

import (
	"fmt"
	"math"
	"time"
)

// MaxPhotos is the number of photos a single report may carry.
const MaxPhotos = 5

// NewLocationSourceID is the water source reference used when the reporter
// describes a location that is not yet a registered source.
const NewLocationSourceID = "new"

// AnonymousReporter is recorded when a report is submitted without a name.
const AnonymousReporter = "Anonymous"

type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether both coordinates are finite and within range.
func (p GeoPoint) Valid() bool {
	return ValidLat(p.Lat) && ValidLng(p.Lng)
}

func ValidLat(v float64) bool {
	return !math.IsNaN(v) && v >= -90 && v <= 90
}

func ValidLng(v float64) bool {
	return !math.IsNaN(v) && v >= -180 && v <= 180
}

// Attachments holds opaque references to uploaded media; binary content lives elsewhere.
type Attachments struct {
	Photos       int      `json:"photos" yaml:"photos"`
	HasVoiceNote bool     `json:"hasVoiceNote" yaml:"hasVoiceNote"`
	PhotoRefs    []string `json:"photoRefs,omitempty" yaml:"photoRefs,omitempty"`
	VoiceNoteRef string   `json:"voiceNoteRef,omitempty" yaml:"voiceNoteRef,omitempty"`
}

type Report struct {
	ID                  string      `json:"id" yaml:"id"`
	WaterSourceID       string      `json:"waterSourceId" yaml:"waterSourceId"`
	Location            *GeoPoint   `json:"location,omitempty" yaml:"location,omitempty"`
	ReporterName        string      `json:"reporterName" yaml:"reporterName"`
	ContactInfo         *string     `json:"contactInfo,omitempty" yaml:"contactInfo,omitempty"`
	AllowContact        bool        `json:"allowContact" yaml:"allowContact"`
	IssueType           IssueType   `json:"issueType" yaml:"issueType"`
	Description         string      `json:"description" yaml:"description"`
	Urgency             Urgency     `json:"urgency" yaml:"urgency"`
	AffectedPeople      *int        `json:"affectedPeople,omitempty" yaml:"affectedPeople,omitempty"`
	Status              Status      `json:"status" yaml:"status"`
	AssignedTo          *string     `json:"assignedTo" yaml:"assignedTo,omitempty"`
	SubmittedAt         time.Time   `json:"submittedAt" yaml:"submittedAt"`
	LastUpdateAt        time.Time   `json:"lastUpdateAt" yaml:"lastUpdateAt"`
	Resolution          *string     `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	ResolvedAt          *time.Time  `json:"resolvedAt,omitempty" yaml:"resolvedAt,omitempty"`
	RejectionReason     *string     `json:"rejectionReason,omitempty" yaml:"rejectionReason,omitempty"`
	EstimatedResolution *time.Time  `json:"estimatedResolution,omitempty" yaml:"estimatedResolution,omitempty"`
	Attachments         Attachments `json:"attachments" yaml:"attachments"`
}

// AffectedCount returns the affected-people estimate, treating a missing value as zero.
func (r *Report) AffectedCount() int {
	if r.AffectedPeople == nil {
		return 0
	}
	return *r.AffectedPeople
}

// Open reports whether the report still needs work.
func (r *Report) Open() bool {
	return !r.Status.Terminal()
}

// Clone returns a deep copy so callers never share pointers with the store.
func (r Report) Clone() Report {
	c := r
	if r.Location != nil {
		loc := *r.Location
		c.Location = &loc
	}
	c.ContactInfo = cloneString(r.ContactInfo)
	c.AssignedTo = cloneString(r.AssignedTo)
	c.Resolution = cloneString(r.Resolution)
	c.RejectionReason = cloneString(r.RejectionReason)
	c.ResolvedAt = cloneTime(r.ResolvedAt)
	c.EstimatedResolution = cloneTime(r.EstimatedResolution)
	if r.AffectedPeople != nil {
		n := *r.AffectedPeople
		c.AffectedPeople = &n
	}
	if r.Attachments.PhotoRefs != nil {
		c.Attachments.PhotoRefs = append([]string(nil), r.Attachments.PhotoRefs...)
	}
	return c
}

// Check lists every invariant the report violates. An empty result means the
// record is consistent.
func (r *Report) Check() []string {
	var problems []string
	if r.ID == "" {
		problems = append(problems, "id is empty")
	}
	if r.WaterSourceID == "" {
		problems = append(problems, "waterSourceId is empty")
	}
	if !r.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", r.Status))
	}
	if !r.Urgency.Valid() {
		problems = append(problems, fmt.Sprintf("unknown urgency %q", r.Urgency))
	}
	if !r.IssueType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown issue type %q", r.IssueType))
	}
	if r.Description == "" {
		problems = append(problems, "description is empty")
	}
	if r.AffectedPeople != nil && *r.AffectedPeople < 0 {
		problems = append(problems, "affectedPeople is negative")
	}
	if r.Location != nil && !r.Location.Valid() {
		problems = append(problems, "location is out of range")
	}
	if r.Attachments.Photos < 0 || r.Attachments.Photos > MaxPhotos {
		problems = append(problems, fmt.Sprintf("photos must be between 0 and %d", MaxPhotos))
	}
	if r.LastUpdateAt.Before(r.SubmittedAt) {
		problems = append(problems, "lastUpdateAt is before submittedAt")
	}
	if (r.Resolution != nil) != (r.Status == StatusResolved) {
		problems = append(problems, "resolution must be set exactly when status is resolved")
	}
	if (r.ResolvedAt != nil) != (r.Status == StatusResolved) {
		problems = append(problems, "resolvedAt must be set exactly when status is resolved")
	}
	if r.ResolvedAt != nil && r.ResolvedAt.Before(r.SubmittedAt) {
		problems = append(problems, "resolvedAt is before submittedAt")
	}
	if (r.RejectionReason != nil) != (r.Status == StatusRejected) {
		problems = append(problems, "rejectionReason must be set exactly when status is rejected")
	}
	if r.EstimatedResolution != nil && r.Status != StatusInProgress {
		problems = append(problems, "estimatedResolution is only allowed while in progress")
	}
	return problems
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
