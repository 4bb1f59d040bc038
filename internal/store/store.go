// Package store holds the authoritative report and water source collections
// and derives every dashboard view from them.
package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

const reportIDPrefix = "RPT-"

// Store owns the report and water source collections for the lifetime of a
// process. Writers are serialized by mu; every read hands out copies.
type Store struct {
	mu sync.RWMutex

	sources     map[string]*model.WaterSource
	sourceOrder []string
	reports     map[string]*model.Report
	order       []string

	nextSeq  int
	revision uint64

	now              func() time.Time
	strictAssignment bool
}

type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithStrictAssignment makes an assignee mandatory before work can start.
func WithStrictAssignment(strict bool) Option {
	return func(s *Store) { s.strictAssignment = strict }
}

// New builds a store from seeded sources and reports. Seed data that breaks a
// report invariant, or duplicates an id, is rejected.
func New(sources []model.WaterSource, reports []model.Report, opts ...Option) (*Store, error) {
	s := &Store{
		sources: make(map[string]*model.WaterSource, len(sources)),
		reports: make(map[string]*model.Report, len(reports)),
		nextSeq: 1,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range sources {
		src := sources[i]
		if problems := src.Check(); len(problems) > 0 {
			return nil, fmt.Errorf("water source %q: %s", src.ID, strings.Join(problems, "; "))
		}
		if _, dup := s.sources[src.ID]; dup {
			return nil, fmt.Errorf("duplicate water source id %q", src.ID)
		}
		src.OpenReportCount = 0
		s.sources[src.ID] = &src
		s.sourceOrder = append(s.sourceOrder, src.ID)
	}

	for i := range reports {
		r := reports[i].Clone()
		if problems := r.Check(); len(problems) > 0 {
			return nil, fmt.Errorf("report %q: %s", r.ID, strings.Join(problems, "; "))
		}
		if _, dup := s.reports[r.ID]; dup {
			return nil, fmt.Errorf("duplicate report id %q", r.ID)
		}
		if seq, ok := parseReportSeq(r.ID); ok && seq >= s.nextSeq {
			s.nextSeq = seq + 1
		}
		s.reports[r.ID] = &r
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

// Revision increases on every successful mutation. Cached views keyed by it
// can never go stale.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Get returns a copy of the report with the given id.
func (s *Store) Get(id string) (model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return model.Report{}, &NotFoundError{Kind: "report", ID: id}
	}
	return r.Clone(), nil
}

// Len returns the number of reports.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot copies both collections in insertion order.
func (s *Store) Snapshot() ([]model.WaterSource, []model.Report) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make([]model.WaterSource, 0, len(s.sourceOrder))
	for _, id := range s.sourceOrder {
		sources = append(sources, *s.sources[id])
	}
	reports := make([]model.Report, 0, len(s.order))
	for _, id := range s.order {
		reports = append(reports, s.reports[id].Clone())
	}
	return sources, reports
}

// Create validates a submission and stores it as a new report.
func (s *Store) Create(in model.NewReportInput) (model.Report, error) {
	sourceID := strings.TrimSpace(in.WaterSourceID)
	if sourceID == "" {
		return model.Report{}, invalid("waterSourceId", "is required")
	}

	if strings.TrimSpace(in.IssueType) == "" {
		return model.Report{}, invalid("issueType", "is required")
	}
	issue, ok := model.ParseIssueType(in.IssueType)
	if !ok {
		return model.Report{}, invalid("issueType", fmt.Sprintf("unknown issue type %q", in.IssueType))
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return model.Report{}, invalid("description", "is required")
	}

	urgency, ok := model.ParseUrgency(in.Urgency)
	if !ok {
		return model.Report{}, invalid("urgency", "must be one of low, medium, high, critical")
	}

	if in.AffectedPeople != nil && *in.AffectedPeople < 0 {
		return model.Report{}, invalid("affectedPeople", "must not be negative")
	}
	if len(in.PhotoRefs) > model.MaxPhotos {
		return model.Report{}, invalid("photoRefs", fmt.Sprintf("at most %d photos are allowed", model.MaxPhotos))
	}
	if in.Location != nil && !in.Location.Valid() {
		return model.Report{}, invalid("location", "is out of range")
	}

	reporter := strings.TrimSpace(in.ReporterName)
	if reporter == "" {
		reporter = model.AnonymousReporter
	}

	report := model.Report{
		WaterSourceID: sourceID,
		ReporterName:  reporter,
		AllowContact:  in.AllowContact,
		IssueType:     issue,
		Description:   description,
		Urgency:       urgency,
		Status:        model.StatusNew,
		Attachments: model.Attachments{
			Photos:       len(in.PhotoRefs),
			HasVoiceNote: in.VoiceNoteRef != "",
			PhotoRefs:    append([]string(nil), in.PhotoRefs...),
			VoiceNoteRef: in.VoiceNoteRef,
		},
	}
	if in.Location != nil {
		loc := *in.Location
		report.Location = &loc
	}
	if contact := strings.TrimSpace(in.ContactInfo); contact != "" {
		report.ContactInfo = &contact
	}
	if in.AffectedPeople != nil {
		n := *in.AffectedPeople
		report.AffectedPeople = &n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceID != model.NewLocationSourceID {
		if _, ok := s.sources[sourceID]; !ok {
			return model.Report{}, &NotFoundError{Kind: "water source", ID: sourceID}
		}
	}

	report.ID = s.allocateID()
	now := s.now()
	report.SubmittedAt = now
	report.LastUpdateAt = now

	s.reports[report.ID] = &report
	s.order = append(s.order, report.ID)
	s.revision++

	return report.Clone(), nil
}

// allocateID must be called with mu held.
func (s *Store) allocateID() string {
	for {
		id := fmt.Sprintf("%s%03d", reportIDPrefix, s.nextSeq)
		s.nextSeq++
		if _, taken := s.reports[id]; !taken {
			return id
		}
	}
}

// touch returns the timestamp for a mutation, never earlier than prev.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func parseReportSeq(id string) (int, bool) {
	if !strings.HasPrefix(id, reportIDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, reportIDPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
