package store

import (
	"iter"
	"slices"
	"strings"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// DefaultAttentionLimit is how many reports the overview highlights.
const DefaultAttentionLimit = 3

// Search matches query against id, water source name, reporter and issue
// type, then applies the status and source filters. An empty sourceID
// matches every source.
func (s *Store) Search(query string, status model.StatusFilter, sourceID string) iter.Seq[model.Report] {
	return s.List(model.ReportFilter{Query: query, Status: status, SourceID: sourceID})
}

// List yields the reports matching f in insertion order. Nothing is evaluated
// until the sequence is ranged over, each range starts from the current
// collection, and no lock is held while the caller's loop body runs.
func (s *Store) List(f model.ReportFilter) iter.Seq[model.Report] {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	return func(yield func(model.Report) bool) {
		s.mu.RLock()
		ids := slices.Clone(s.order)
		s.mu.RUnlock()

		for _, id := range ids {
			r, ok := s.matchOne(id, f, query)
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Collect drains a report sequence into a slice.
func Collect(seq iter.Seq[model.Report]) []model.Report {
	out := make([]model.Report, 0)
	for r := range seq {
		out = append(out, r)
	}
	return out
}

// CountByStatus counts the reports matching f per status.
func (s *Store) CountByStatus(f model.ReportFilter) model.StatusCounts {
	var counts model.StatusCounts
	for r := range s.List(f) {
		counts.Add(r.Status)
	}
	return counts
}

// Attention returns the reports that still need triage: every new report and
// every critical one, in insertion order. A non-positive limit returns all.
func (s *Store) Attention(limit int) []model.Report {
	out := make([]model.Report, 0)
	for r := range s.List(model.ReportFilter{}) {
		if r.Status != model.StatusNew && r.Urgency != model.UrgencyCritical {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *Store) matchOne(id string, f model.ReportFilter, query string) (model.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok || !s.matches(r, f, query) {
		return model.Report{}, false
	}
	return r.Clone(), true
}

// matches must be called with mu held.
func (s *Store) matches(r *model.Report, f model.ReportFilter, query string) bool {
	if !f.Status.Matches(r.Status) {
		return false
	}
	if f.SourceID != "" && r.WaterSourceID != f.SourceID {
		return false
	}
	if f.Urgency != "" && r.Urgency != f.Urgency {
		return false
	}
	if f.IssueType != "" && r.IssueType != f.IssueType {
		return false
	}
	if f.Reporter != "" && !strings.EqualFold(r.ReporterName, strings.TrimSpace(f.Reporter)) {
		return false
	}
	if query == "" {
		return true
	}

	fields := []string{
		r.ID,
		s.sourceName(r.WaterSourceID),
		r.ReporterName,
		string(r.IssueType),
		r.IssueType.Label(),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// sourceName resolves a report's source reference; must be called with mu held.
func (s *Store) sourceName(id string) string {
	if id == model.NewLocationSourceID {
		return model.NewLocationName
	}
	if src, ok := s.sources[id]; ok {
		return src.Name
	}
	return ""
}
