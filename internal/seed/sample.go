// Package seed provides the data the report store starts from: a built-in
// sample matching the admin dashboard, or a YAML snapshot file.
package seed

import (
	"time"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

// Snapshot is a complete set of sources and reports.
type Snapshot struct {
	Sources []model.WaterSource `yaml:"sources" json:"sources"`
	Reports []model.Report      `yaml:"reports" json:"reports"`
}

// Sample returns six water sources and the five reports shown on the admin dashboard.
func Sample() Snapshot {
	return Snapshot{
		Sources: []model.WaterSource{
			{
				ID:            "1",
				Name:          "Central Park Well",
				Description:   "Main water source for central district",
				Area:          "Downtown",
				Status:        model.SourceFunctional,
				Location:      model.GeoPoint{Lat: 40.7829, Lng: -73.9654},
				LastCheckedAt: ts("2024-01-19T08:00:00Z"),
			},
			{
				ID:            "2",
				Name:          "Community Center Tap",
				Description:   "Water tap at community center",
				Area:          "Community Center",
				Status:        model.SourceBroken,
				Location:      model.GeoPoint{Lat: 40.7614, Lng: -73.9776},
				LastCheckedAt: ts("2024-01-18T10:00:00Z"),
			},
			{
				ID:            "3",
				Name:          "School Fountain",
				Description:   "Drinking fountain at elementary school",
				Area:          "School District",
				Status:        model.SourceContaminated,
				Location:      model.GeoPoint{Lat: 40.7505, Lng: -73.9934},
				LastCheckedAt: ts("2024-01-19T07:00:00Z"),
			},
			{
				ID:            "4",
				Name:          "Park Well #2",
				Description:   "Secondary park water source",
				Area:          "North Park",
				Status:        model.SourceFunctional,
				Location:      model.GeoPoint{Lat: 40.7749, Lng: -73.9442},
				LastCheckedAt: ts("2024-01-19T09:30:00Z"),
			},
			{
				ID:            "5",
				Name:          "Market Square Pump",
				Description:   "Hand pump at market square",
				Area:          "Market Area",
				Status:        model.SourceDry,
				Location:      model.GeoPoint{Lat: 40.7589, Lng: -73.9851},
				LastCheckedAt: ts("2024-01-19T05:00:00Z"),
			},
			{
				ID:            "6",
				Name:          "Park Well #3",
				Description:   "Hand-dug well at the north end of the park",
				Area:          "North Park",
				Status:        model.SourceFunctional,
				Location:      model.GeoPoint{Lat: 40.7812, Lng: -73.9520},
				LastCheckedAt: ts("2024-01-17T15:00:00Z"),
			},
		},
		Reports: []model.Report{
			{
				ID:                  "RPT-001",
				WaterSourceID:       "1",
				ReporterName:        "John Doe",
				IssueType:           model.IssueNoWaterFlow,
				Description:         "The main pump appears to be broken. No water coming out when handle is operated.",
				Urgency:             model.UrgencyHigh,
				AffectedPeople:      intPtr(150),
				Status:              model.StatusInProgress,
				AssignedTo:          strPtr("Tech Team Alpha"),
				SubmittedAt:         ts("2024-01-15T10:30:00Z"),
				LastUpdateAt:        ts("2024-01-16T14:20:00Z"),
				EstimatedResolution: tsPtr("2024-01-18T00:00:00Z"),
				Attachments:         model.Attachments{Photos: 2, HasVoiceNote: true},
			},
			{
				ID:             "RPT-002",
				WaterSourceID:  "3",
				ReporterName:   "Jane Smith",
				IssueType:      model.IssueContaminatedWater,
				Description:    "Water has a strange green color and smells unusual. Children reported stomach issues after drinking.",
				Urgency:        model.UrgencyCritical,
				AffectedPeople: intPtr(300),
				Status:         model.StatusResolved,
				AssignedTo:     strPtr("Health Inspector"),
				SubmittedAt:    ts("2024-01-10T08:15:00Z"),
				LastUpdateAt:   ts("2024-01-12T16:45:00Z"),
				ResolvedAt:     tsPtr("2024-01-12T16:45:00Z"),
				Resolution:     strPtr("Water source cleaned and tested. New filtration system installed."),
				Attachments:    model.Attachments{Photos: 3},
			},
			{
				ID:             "RPT-003",
				WaterSourceID:  "5",
				ReporterName:   "Bob Wilson",
				IssueType:      model.IssueLowPressure,
				Description:    "Water pressure has been decreasing over the past week. Takes very long to fill containers.",
				Urgency:        model.UrgencyMedium,
				AffectedPeople: intPtr(75),
				Status:         model.StatusNew,
				SubmittedAt:    ts("2024-01-18T16:22:00Z"),
				LastUpdateAt:   ts("2024-01-18T16:22:00Z"),
				Attachments:    model.Attachments{Photos: 1},
			},
			{
				ID:             "RPT-004",
				WaterSourceID:  "2",
				ReporterName:   "Alice Brown",
				IssueType:      model.IssueBrokenPump,
				Description:    "Handle is completely broken off. Metal parts are rusted and sharp.",
				Urgency:        model.UrgencyHigh,
				AffectedPeople: intPtr(200),
				Status:         model.StatusResolved,
				AssignedTo:     strPtr("Maintenance Team"),
				SubmittedAt:    ts("2024-01-05T12:10:00Z"),
				LastUpdateAt:   ts("2024-01-07T09:30:00Z"),
				ResolvedAt:     tsPtr("2024-01-07T09:30:00Z"),
				Resolution:     strPtr("Handle replaced and pump mechanism serviced."),
				Attachments:    model.Attachments{Photos: 4, HasVoiceNote: true},
			},
			{
				ID:             "RPT-005",
				WaterSourceID:  "6",
				ReporterName:   "Mike Johnson",
				IssueType:      model.IssueStrangeTaste,
				Description:    "Water tastes metallic and smells of sulphur since the weekend.",
				Urgency:        model.UrgencyMedium,
				AffectedPeople: intPtr(120),
				Status:         model.StatusInProgress,
				AssignedTo:     strPtr("Water Quality Team"),
				SubmittedAt:    ts("2024-01-12T14:45:00Z"),
				LastUpdateAt:   ts("2024-01-13T09:00:00Z"),
				Attachments:    model.Attachments{Photos: 0},
			},
		},
	}
}

func ts(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(v string) *time.Time {
	t := ts(v)
	return &t
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }
