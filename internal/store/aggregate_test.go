package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/seed"
)

func TestAggregate_Sample(t *testing.T) {
	stats := newSample(t).Aggregate()

	assert.Equal(t, model.StatusCounts{Total: 5, New: 1, InProgress: 2, Resolved: 2}, stats.Counts)
	assert.Equal(t, UrgencyCounts{Medium: 2, High: 2, Critical: 1}, stats.Urgency)
	assert.Equal(t, 1, stats.CriticalIssues)
	assert.Equal(t, 845, stats.TotalAffectedPeople)
	require.NotNil(t, stats.AvgResolutionHours)
	assert.InDelta(t, 50.92, *stats.AvgResolutionHours, 1e-9)

	assert.Equal(t, []LocationCount{
		{Name: "Downtown", Reports: 1},
		{Name: "School District", Reports: 1, Resolved: 1},
		{Name: "Market Area", Reports: 1},
		{Name: "Community Center", Reports: 1, Resolved: 1},
		{Name: "North Park", Reports: 1},
	}, stats.Locations)

	monday := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, []TrendPoint{
		{Label: "Week 1", WeekStart: monday(1), Submitted: 1, Resolved: 1},
		{Label: "Week 2", WeekStart: monday(8), Submitted: 2, Resolved: 1},
		{Label: "Week 3", WeekStart: monday(15), Submitted: 2, Resolved: 0},
	}, stats.Weekly)

	assert.Equal(t, []ChartSlice{
		{Key: "new", Label: "New", Value: 1},
		{Key: "in_progress", Label: "In Progress", Value: 2},
		{Key: "resolved", Label: "Resolved", Value: 2},
		{Key: "rejected", Label: "Rejected", Value: 0},
	}, stats.StatusChart)
	assert.Equal(t, "critical", stats.UrgencyChart[0].Key)
	assert.Equal(t, 1, stats.UrgencyChart[0].Value)
}

func TestAggregate_Empty(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)

	stats := s.Aggregate()
	assert.Equal(t, 0, stats.Counts.Total)
	assert.Nil(t, stats.AvgResolutionHours)
	assert.NotNil(t, stats.Locations)
	assert.Empty(t, stats.Locations)
	assert.NotNil(t, stats.Weekly)
	assert.Empty(t, stats.Weekly)
	assert.Len(t, stats.StatusChart, 4)
}

func TestAggregate_TotalsAgree(t *testing.T) {
	s, _ := newSampleWithClock(t)
	for i := 0; i < 4; i++ {
		_, err := s.Create(validInput())
		require.NoError(t, err)
	}
	_, err := s.SetStatus("RPT-006", model.StatusRejected, model.StatusPayload{RejectionReason: "spam"})
	require.NoError(t, err)

	stats := s.Aggregate()
	c := stats.Counts
	assert.Equal(t, 9, c.Total)
	assert.Equal(t, c.Total, c.New+c.InProgress+c.Resolved+c.Rejected)
	assert.Equal(t, c.Total, stats.Urgency.Low+stats.Urgency.Medium+stats.Urgency.High+stats.Urgency.Critical)

	var submitted, resolved, located int
	for _, p := range stats.Weekly {
		submitted += p.Submitted
		resolved += p.Resolved
	}
	for _, l := range stats.Locations {
		located += l.Reports
	}
	assert.Equal(t, c.Total, submitted)
	assert.Equal(t, c.Resolved, resolved)
	assert.Equal(t, c.Total, located)
}

func TestAggregate_WeeklySeriesIsContiguous(t *testing.T) {
	sources := seed.Sample().Sources
	at := func(s string) time.Time {
		tm, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return tm
	}
	report := func(id, submitted string) model.Report {
		return model.Report{
			ID:            id,
			WaterSourceID: "1",
			ReporterName:  "Tester",
			IssueType:     model.IssueOther,
			Description:   "x",
			Urgency:       model.UrgencyLow,
			Status:        model.StatusNew,
			SubmittedAt:   at(submitted),
			LastUpdateAt:  at(submitted),
		}
	}

	// Sunday late evening still belongs to the week that started on Monday
	s, err := New(sources, []model.Report{
		report("RPT-001", "2024-03-04T08:00:00Z"),
		report("RPT-002", "2024-03-24T23:59:00Z"),
	})
	require.NoError(t, err)

	weekly := s.Aggregate().Weekly
	require.Len(t, weekly, 3)
	assert.Equal(t, []int{1, 0, 1}, []int{weekly[0].Submitted, weekly[1].Submitted, weekly[2].Submitted})
	assert.Equal(t, "Week 3", weekly[2].Label)
	for i := 1; i < len(weekly); i++ {
		assert.Equal(t, 7*24*time.Hour, weekly[i].WeekStart.Sub(weekly[i-1].WeekStart))
	}
}

func TestAggregate_UnknownAndNewLocations(t *testing.T) {
	s, _ := newSampleWithClock(t)
	in := validInput()
	in.WaterSourceID = model.NewLocationSourceID
	_, err := s.Create(in)
	require.NoError(t, err)

	locations := s.Aggregate().Locations
	last := locations[len(locations)-1]
	assert.Equal(t, LocationCount{Name: model.NewLocationName, Reports: 1}, last)

	reports := seed.Sample().Reports[:1]
	s, err = New(nil, reports)
	require.NoError(t, err)
	assert.Equal(t, UnknownLocationName, s.Aggregate().Locations[0].Name)
}

func TestAggregate_DoesNotMutate(t *testing.T) {
	s := newSample(t)
	_, before := s.Snapshot()
	s.Aggregate()
	_, after := s.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, uint64(0), s.Revision())
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T00:00:00Z", "2024-01-01"},
		{"2024-01-07T23:59:59Z", "2024-01-01"},
		{"2024-01-08T00:00:00Z", "2024-01-08"},
		{"2024-01-10T08:15:00Z", "2024-01-08"},
		{"2024-01-15T01:00:00+03:00", "2024-01-08"},
	}
	for _, tt := range tests {
		in, err := time.Parse(time.RFC3339, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, weekStart(in).Format("2006-01-02"), tt.in)
	}
}
