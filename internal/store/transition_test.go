package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]model.Status]bool{
		{model.StatusNew, model.StatusInProgress}:        true,
		{model.StatusNew, model.StatusRejected}:          true,
		{model.StatusInProgress, model.StatusInProgress}: true,
		{model.StatusInProgress, model.StatusResolved}:   true,
		{model.StatusInProgress, model.StatusRejected}:   true,
	}

	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			assert.Equal(t, allowed[[2]model.Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestSetStatus_StartWork(t *testing.T) {
	s, _ := newSampleWithClock(t)
	before, _ := s.Get("RPT-003")
	eta := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)

	r, err := s.SetStatus("RPT-003", model.StatusInProgress, model.StatusPayload{
		AssignedTo:          "Crew B",
		EstimatedResolution: &eta,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProgress, r.Status)
	assert.Equal(t, "Crew B", *r.AssignedTo)
	assert.Equal(t, eta, *r.EstimatedResolution)
	assert.True(t, r.LastUpdateAt.After(before.LastUpdateAt))
	assert.Equal(t, uint64(1), s.Revision())
	assertInvariants(t, s)
}

func TestSetStatus_Resolve(t *testing.T) {
	s, _ := newSampleWithClock(t)
	before, _ := s.Get("RPT-001")
	require.NotNil(t, before.EstimatedResolution)

	r, err := s.SetStatus("RPT-001", model.StatusResolved, model.StatusPayload{Resolution: "Fixed pump"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusResolved, r.Status)
	require.NotNil(t, r.Resolution)
	assert.Equal(t, "Fixed pump", *r.Resolution)
	assert.Nil(t, r.EstimatedResolution)
	require.NotNil(t, r.ResolvedAt)
	assert.Equal(t, r.LastUpdateAt, *r.ResolvedAt)
	assert.True(t, r.LastUpdateAt.After(before.LastUpdateAt))
	assert.Equal(t, "Tech Team Alpha", *r.AssignedTo)
	assertInvariants(t, s)
}

func TestSetStatus_Reject(t *testing.T) {
	s, _ := newSampleWithClock(t)

	r, err := s.SetStatus("RPT-003", model.StatusRejected, model.StatusPayload{RejectionReason: "Duplicate of RPT-001"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, r.Status)
	assert.Equal(t, "Duplicate of RPT-001", *r.RejectionReason)
	assert.Nil(t, r.Resolution)
	assert.Nil(t, r.ResolvedAt)

	r, err = s.SetStatus("RPT-001", model.StatusRejected, model.StatusPayload{RejectionReason: "Not a public source"})
	require.NoError(t, err)
	assert.Nil(t, r.EstimatedResolution)
	assertInvariants(t, s)
}

func TestSetStatus_UpdateWhileInProgress(t *testing.T) {
	s, _ := newSampleWithClock(t)
	eta := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)

	r, err := s.SetStatus("RPT-005", model.StatusInProgress, model.StatusPayload{EstimatedResolution: &eta})
	require.NoError(t, err)
	assert.Equal(t, "Water Quality Team", *r.AssignedTo)
	assert.Equal(t, eta, *r.EstimatedResolution)

	r, err = s.SetStatus("RPT-005", model.StatusInProgress, model.StatusPayload{AssignedTo: "Lab"})
	require.NoError(t, err)
	assert.Equal(t, "Lab", *r.AssignedTo)
	assert.Equal(t, eta, *r.EstimatedResolution)
}

func TestSetStatus_TerminalStatesNeverLeave(t *testing.T) {
	payload := model.StatusPayload{
		AssignedTo:      "Crew",
		Resolution:      "Done",
		RejectionReason: "No",
	}

	for _, id := range []string{"RPT-002", "RPT-004"} {
		for _, to := range model.Statuses {
			s, _ := newSampleWithClock(t)
			before, _ := s.Get(id)

			_, err := s.SetStatus(id, to, payload)

			var te *InvalidTransitionError
			require.ErrorAs(t, err, &te, "%s -> %s", id, to)
			assert.Equal(t, model.StatusResolved, te.From)
			assert.Equal(t, to, te.To)

			after, _ := s.Get(id)
			assert.Equal(t, before, after)
			assert.Equal(t, uint64(0), s.Revision())
		}
	}
}

func TestSetStatus_ResolvedBackToNew(t *testing.T) {
	s, _ := newSampleWithClock(t)
	before, _ := s.Get("RPT-002")

	_, err := s.SetStatus("RPT-002", model.StatusNew, model.StatusPayload{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	after, _ := s.Get("RPT-002")
	assert.Equal(t, before, after)
}

func TestSetStatus_RejectedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		to      model.Status
		payload model.StatusPayload
		field   string
	}{
		{"resolve without resolution", "RPT-001", model.StatusResolved, model.StatusPayload{Resolution: "  "}, "resolution"},
		{"reject without reason", "RPT-003", model.StatusRejected, model.StatusPayload{}, "rejectionReason"},
		{"unknown status", "RPT-001", model.Status("closed"), model.StatusPayload{}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSampleWithClock(t)
			before, _ := s.Get(tt.id)

			_, err := s.SetStatus(tt.id, tt.to, tt.payload)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			after, _ := s.Get(tt.id)
			assert.Equal(t, before, after)
		})
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	s, _ := newSampleWithClock(t)
	_, err := s.SetStatus("RPT-404", model.StatusInProgress, model.StatusPayload{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransition_ReturnsPreviousStatus(t *testing.T) {
	s, _ := newSampleWithClock(t)

	from, r, err := s.Transition("RPT-003", model.StatusInProgress, model.StatusPayload{AssignedTo: "Crew B"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, from)
	assert.Equal(t, model.StatusInProgress, r.Status)

	from, _, err = s.Transition("RPT-003", model.StatusNew, model.StatusPayload{})
	var te *InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, model.StatusInProgress, from)

	from, _, err = s.Transition("RPT-404", model.StatusResolved, model.StatusPayload{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, from)
}

func TestTransition_ConcurrentCallersSeeOwnPreviousStatus(t *testing.T) {
	s, _ := newSampleWithClock(t)

	const workers = 16
	froms := make([]model.Status, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, _, err := s.Transition("RPT-003", model.StatusInProgress, model.StatusPayload{AssignedTo: "Crew"})
			assert.NoError(t, err)
			froms[i] = from
		}(i)
	}
	wg.Wait()

	counts := make(map[model.Status]int)
	for _, from := range froms {
		counts[from]++
	}
	assert.Equal(t, map[model.Status]int{model.StatusNew: 1, model.StatusInProgress: workers - 1}, counts)
	assert.Equal(t, uint64(workers), s.Revision())
}

func TestSetStatus_StrictAssignment(t *testing.T) {
	clock := &stepClock{t: baseTime}
	s := newSample(t, WithClock(clock.Now), WithStrictAssignment(true))

	_, err := s.SetStatus("RPT-003", model.StatusInProgress, model.StatusPayload{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "assignedTo", ve.Field)

	r, err := s.SetStatus("RPT-003", model.StatusInProgress, model.StatusPayload{AssignedTo: "Crew"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, r.Status)
}

func TestSetStatus_ClockBehindKeepsOrder(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newSample(t, WithClock(func() time.Time { return early }))
	before, _ := s.Get("RPT-001")

	r, err := s.SetStatus("RPT-001", model.StatusResolved, model.StatusPayload{Resolution: "Fixed"})
	require.NoError(t, err)

	assert.Equal(t, before.LastUpdateAt, r.LastUpdateAt)
	assert.False(t, r.ResolvedAt.Before(r.SubmittedAt))
	assertInvariants(t, s)
}

func TestAssign(t *testing.T) {
	s, _ := newSampleWithClock(t)
	before, _ := s.Get("RPT-003")

	r, err := s.Assign("RPT-003", " Crew C ")
	require.NoError(t, err)
	assert.Equal(t, "Crew C", *r.AssignedTo)
	assert.Equal(t, model.StatusNew, r.Status)
	assert.True(t, r.LastUpdateAt.After(before.LastUpdateAt))
	assert.Equal(t, uint64(1), s.Revision())
}

func TestAssign_Errors(t *testing.T) {
	s, _ := newSampleWithClock(t)

	_, err := s.Assign("RPT-003", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Assign("RPT-404", "Crew")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Assign("RPT-004", "Crew")
	var te *InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "only new or in-progress reports can be assigned")

	assert.Equal(t, uint64(0), s.Revision())
}
