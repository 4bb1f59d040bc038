package store

import (
	"fmt"
	"strings"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// transitions lists the statuses reachable from each state. Resolved and
// rejected have no entry: nothing leaves a terminal state.
var transitions = map[model.Status][]model.Status{
	model.StatusNew:        {model.StatusInProgress, model.StatusRejected},
	model.StatusInProgress: {model.StatusInProgress, model.StatusResolved, model.StatusRejected},
}

// CanTransition reports whether a report in from may move to to.
func CanTransition(from, to model.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetStatus moves a report through the lifecycle. The report is left
// untouched when the transition or its payload is rejected.
func (s *Store) SetStatus(id string, to model.Status, payload model.StatusPayload) (model.Report, error) {
	_, report, err := s.Transition(id, to, payload)
	return report, err
}

// Transition is SetStatus that also returns the status the report held
// before the change, read under the same lock.
func (s *Store) Transition(id string, to model.Status, payload model.StatusPayload) (model.Status, model.Report, error) {
	if !to.Valid() {
		return "", model.Report{}, invalid("status", fmt.Sprintf("unknown status %q", to))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reports[id]
	if !ok {
		return "", model.Report{}, &NotFoundError{Kind: "report", ID: id}
	}
	from := current.Status
	if !CanTransition(from, to) {
		return from, model.Report{}, &InvalidTransitionError{ReportID: id, From: from, To: to}
	}

	next := current.Clone()
	switch to {
	case model.StatusInProgress:
		if assignee := strings.TrimSpace(payload.AssignedTo); assignee != "" {
			next.AssignedTo = &assignee
		}
		if next.AssignedTo == nil && s.strictAssignment {
			return from, model.Report{}, invalid("assignedTo", "is required before work can start")
		}
		if payload.EstimatedResolution != nil {
			eta := *payload.EstimatedResolution
			next.EstimatedResolution = &eta
		}
		next.Resolution = nil
		next.ResolvedAt = nil
		next.RejectionReason = nil

	case model.StatusResolved:
		resolution := strings.TrimSpace(payload.Resolution)
		if resolution == "" {
			return from, model.Report{}, invalid("resolution", "is required to resolve a report")
		}
		next.Resolution = &resolution
		next.RejectionReason = nil
		next.EstimatedResolution = nil

	case model.StatusRejected:
		reason := strings.TrimSpace(payload.RejectionReason)
		if reason == "" {
			return from, model.Report{}, invalid("rejectionReason", "is required to reject a report")
		}
		next.RejectionReason = &reason
		next.Resolution = nil
		next.ResolvedAt = nil
		next.EstimatedResolution = nil
	}

	now := s.touch(next.LastUpdateAt)
	if to == model.StatusResolved {
		next.ResolvedAt = &now
	}
	next.Status = to
	next.LastUpdateAt = now

	*current = next
	s.revision++

	return from, next.Clone(), nil
}

// Assign sets the team or person handling a report without changing its status.
func (s *Store) Assign(id, assignee string) (model.Report, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return model.Report{}, invalid("assignedTo", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reports[id]
	if !ok {
		return model.Report{}, &NotFoundError{Kind: "report", ID: id}
	}
	if current.Status.Terminal() {
		return model.Report{}, &InvalidTransitionError{
			ReportID: id,
			From:     current.Status,
			To:       current.Status,
			Reason:   "only new or in-progress reports can be assigned",
		}
	}

	current.AssignedTo = &assignee
	current.LastUpdateAt = s.touch(current.LastUpdateAt)
	s.revision++

	return current.Clone(), nil
}
