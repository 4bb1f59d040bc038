package store

import (
	"sort"
	"strings"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/geo"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// NearbySource is a water source with its distance from the query point.
type NearbySource struct {
	model.WaterSource
	DistanceKm float64 `json:"distanceKm"`
}

// Overview backs the landing-page counters.
type Overview struct {
	TotalSources   int `json:"totalSources"`
	ActiveSources  int `json:"activeSources"`
	ReportedIssues int `json:"reportedIssues"`
	ResolvedIssues int `json:"resolvedIssues"`
}

// Sources returns every water source with its open report count.
func (s *Store) Sources() []model.WaterSource {
	return s.SearchSources("", "")
}

// Source returns one water source with its open report count.
func (s *Store) Source(id string) (model.WaterSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[id]
	if !ok {
		return model.WaterSource{}, &NotFoundError{Kind: "water source", ID: id}
	}
	out := *src
	out.OpenReportCount = s.openCounts()[id]
	return out, nil
}

// SourceName resolves a report's water source reference to a display name.
// The new-location reference maps to its placeholder name; an unknown id
// yields "".
func (s *Store) SourceName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceName(id)
}

// SearchSources filters sources by a case-insensitive match on name or
// description and by status.
func (s *Store) SearchSources(query string, status model.SourceStatusFilter) []model.WaterSource {
	query = strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	open := s.openCounts()
	out := make([]model.WaterSource, 0, len(s.sourceOrder))
	for _, id := range s.sourceOrder {
		src := s.sources[id]
		if !status.Matches(src.Status) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(src.Name), query) &&
			!strings.Contains(strings.ToLower(src.Description), query) {
			continue
		}
		c := *src
		c.OpenReportCount = open[id]
		out = append(out, c)
	}
	return out
}

// NearbySources returns the sources within radiusKm of the point, nearest first.
func (s *Store) NearbySources(at model.GeoPoint, radiusKm float64) []NearbySource {
	out := make([]NearbySource, 0)
	for _, src := range s.Sources() {
		d := geo.DistanceKm(at, src.Location)
		if d > radiusKm {
			continue
		}
		out = append(out, NearbySource{WaterSource: src, DistanceKm: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Overview counts sources in working order and the open and resolved issues.
func (s *Store) Overview() Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o := Overview{TotalSources: len(s.sourceOrder)}
	for _, id := range s.sourceOrder {
		if s.sources[id].Status == model.SourceFunctional {
			o.ActiveSources++
		}
	}
	for _, id := range s.order {
		r := s.reports[id]
		switch {
		case r.Open():
			o.ReportedIssues++
		case r.Status == model.StatusResolved:
			o.ResolvedIssues++
		}
	}
	return o
}

// openCounts joins reports to their sources; must be called with mu held.
func (s *Store) openCounts() map[string]int {
	counts := make(map[string]int, len(s.sources))
	for _, id := range s.order {
		r := s.reports[id]
		if r.Open() {
			counts[r.WaterSourceID]++
		}
	}
	return counts
}
