package store

import (
	"fmt"
	"math"
	"time"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

const week = 7 * 24 * time.Hour

// UnknownLocationName groups reports whose source reference no longer resolves.
const UnknownLocationName = "Unknown location"

type UrgencyCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

func (c *UrgencyCounts) add(u model.Urgency) {
	switch u {
	case model.UrgencyLow:
		c.Low++
	case model.UrgencyMedium:
		c.Medium++
	case model.UrgencyHigh:
		c.High++
	case model.UrgencyCritical:
		c.Critical++
	}
}

func (c UrgencyCounts) of(u model.Urgency) int {
	switch u {
	case model.UrgencyLow:
		return c.Low
	case model.UrgencyMedium:
		return c.Medium
	case model.UrgencyHigh:
		return c.High
	case model.UrgencyCritical:
		return c.Critical
	}
	return 0
}

// ChartSlice is one bar or pie segment.
type ChartSlice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type LocationCount struct {
	Name     string `json:"name"`
	Reports  int    `json:"reports"`
	Resolved int    `json:"resolved"`
}

// TrendPoint is one ISO week of the submitted-vs-resolved series.
type TrendPoint struct {
	Label     string    `json:"label"`
	WeekStart time.Time `json:"weekStart"`
	Submitted int       `json:"submitted"`
	Resolved  int       `json:"resolved"`
}

type DashboardStats struct {
	Counts              model.StatusCounts `json:"counts"`
	Urgency             UrgencyCounts      `json:"urgency"`
	CriticalIssues      int                `json:"criticalIssues"`
	TotalAffectedPeople int                `json:"totalAffectedPeople"`
	AvgResolutionHours  *float64           `json:"avgResolutionHours,omitempty"`
	Locations           []LocationCount    `json:"locations"`
	Weekly              []TrendPoint       `json:"weekly"`
	StatusChart         []ChartSlice       `json:"statusChart"`
	UrgencyChart        []ChartSlice       `json:"urgencyChart"`
}

// Aggregate computes the dashboard statistics over the whole collection. It
// keeps no state between calls.
func (s *Store) Aggregate() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{
		Locations: make([]LocationCount, 0),
	}

	locationIndex := make(map[string]int)
	var resolvedHours float64
	var resolvedTimed int

	for _, id := range s.order {
		r := s.reports[id]

		stats.Counts.Add(r.Status)
		stats.Urgency.add(r.Urgency)
		stats.TotalAffectedPeople += r.AffectedCount()

		name := s.locationName(r.WaterSourceID)
		idx, seen := locationIndex[name]
		if !seen {
			idx = len(stats.Locations)
			locationIndex[name] = idx
			stats.Locations = append(stats.Locations, LocationCount{Name: name})
		}
		stats.Locations[idx].Reports++
		if r.Status == model.StatusResolved {
			stats.Locations[idx].Resolved++
			if r.ResolvedAt != nil {
				resolvedHours += r.ResolvedAt.Sub(r.SubmittedAt).Hours()
				resolvedTimed++
			}
		}
	}

	stats.CriticalIssues = stats.Urgency.Critical
	if resolvedTimed > 0 {
		avg := math.Round(resolvedHours/float64(resolvedTimed)*100) / 100
		stats.AvgResolutionHours = &avg
	}
	stats.Weekly = s.weeklyTrend()

	stats.StatusChart = make([]ChartSlice, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		stats.StatusChart = append(stats.StatusChart, ChartSlice{
			Key:   string(st),
			Label: st.Label(),
			Value: stats.Counts.Of(st),
		})
	}
	stats.UrgencyChart = make([]ChartSlice, 0, len(model.Urgencies))
	for _, u := range model.Urgencies {
		stats.UrgencyChart = append(stats.UrgencyChart, ChartSlice{
			Key:   string(u),
			Label: u.Label(),
			Value: stats.Urgency.of(u),
		})
	}

	return stats
}

// weeklyTrend buckets submissions by submittedAt and resolutions by
// resolvedAt into contiguous weeks. Must be called with mu held.
func (s *Store) weeklyTrend() []TrendPoint {
	points := make([]TrendPoint, 0)
	if len(s.order) == 0 {
		return points
	}

	var first, last time.Time
	for i, id := range s.order {
		r := s.reports[id]
		ws := weekStart(r.SubmittedAt)
		if i == 0 || ws.Before(first) {
			first = ws
		}
		if ws.After(last) {
			last = ws
		}
		if r.ResolvedAt != nil {
			if rs := weekStart(*r.ResolvedAt); rs.After(last) {
				last = rs
			}
		}
	}

	n := int(last.Sub(first)/week) + 1
	for i := 0; i < n; i++ {
		points = append(points, TrendPoint{
			Label:     fmt.Sprintf("Week %d", i+1),
			WeekStart: first.Add(time.Duration(i) * week),
		})
	}

	for _, id := range s.order {
		r := s.reports[id]
		points[weekIndex(first, r.SubmittedAt)].Submitted++
		if r.Status == model.StatusResolved && r.ResolvedAt != nil {
			if i := weekIndex(first, *r.ResolvedAt); i >= 0 && i < n {
				points[i].Resolved++
			}
		}
	}
	return points
}

// weekStart truncates t to Monday 00:00 UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func weekIndex(first, t time.Time) int {
	return int(weekStart(t).Sub(first) / week)
}

// locationName must be called with mu held.
func (s *Store) locationName(sourceID string) string {
	if sourceID == model.NewLocationSourceID {
		return model.NewLocationName
	}
	if src, ok := s.sources[sourceID]; ok {
		return src.AreaLabel()
	}
	return UnknownLocationName
}
