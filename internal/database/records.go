package database

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

type SourceRecord struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Position      int       `gorm:"not null;index"`
	Name          string    `gorm:"not null;size:255"`
	Description   string    `gorm:"type:text"`
	Area          string    `gorm:"size:255"`
	Status        string    `gorm:"not null;size:20"`
	Lat           float64   `gorm:"not null"`
	Lng           float64   `gorm:"not null"`
	LastCheckedAt time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (SourceRecord) TableName() string {
	return "water_sources"
}

type ReportRecord struct {
	ID                  string          `gorm:"primaryKey;size:32"`
	Position            int             `gorm:"not null;index"`
	WaterSourceID       string          `gorm:"not null;size:64;index"`
	Lat                 *float64        `gorm:"type:double precision"`
	Lng                 *float64        `gorm:"type:double precision"`
	ReporterName        string          `gorm:"not null;size:255"`
	ContactInfo         *string         `gorm:"size:255"`
	AllowContact        bool            `gorm:"not null"`
	IssueType           string          `gorm:"not null;size:50"`
	Description         string          `gorm:"type:text;not null"`
	Urgency             string          `gorm:"not null;size:20"`
	AffectedPeople      *int            `gorm:"type:integer"`
	Status              string          `gorm:"not null;size:20;index"`
	AssignedTo          *string         `gorm:"size:255"`
	SubmittedAt         time.Time       `gorm:"not null"`
	LastUpdateAt        time.Time       `gorm:"not null"`
	Resolution          *string         `gorm:"type:text"`
	ResolvedAt          *time.Time      `gorm:"type:timestamptz"`
	RejectionReason     *string         `gorm:"type:text"`
	EstimatedResolution *datatypes.Date `gorm:"type:date"`
	Photos              int             `gorm:"not null"`
	HasVoiceNote        bool            `gorm:"not null"`
	PhotoRefs           pq.StringArray  `gorm:"type:text[]"`
	VoiceNoteRef        string          `gorm:"size:512"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
}

func (ReportRecord) TableName() string {
	return "water_reports"
}

func sourceRecord(pos int, src model.WaterSource) SourceRecord {
	return SourceRecord{
		ID:            src.ID,
		Position:      pos,
		Name:          src.Name,
		Description:   src.Description,
		Area:          src.Area,
		Status:        string(src.Status),
		Lat:           src.Location.Lat,
		Lng:           src.Location.Lng,
		LastCheckedAt: src.LastCheckedAt,
	}
}

func (r SourceRecord) toModel() model.WaterSource {
	return model.WaterSource{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Area:          r.Area,
		Status:        model.SourceStatus(r.Status),
		Location:      model.GeoPoint{Lat: r.Lat, Lng: r.Lng},
		LastCheckedAt: r.LastCheckedAt,
	}
}

func reportRecord(pos int, r model.Report) ReportRecord {
	rec := ReportRecord{
		ID:              r.ID,
		Position:        pos,
		WaterSourceID:   r.WaterSourceID,
		ReporterName:    r.ReporterName,
		ContactInfo:     r.ContactInfo,
		AllowContact:    r.AllowContact,
		IssueType:       string(r.IssueType),
		Description:     r.Description,
		Urgency:         string(r.Urgency),
		AffectedPeople:  r.AffectedPeople,
		Status:          string(r.Status),
		AssignedTo:      r.AssignedTo,
		SubmittedAt:     r.SubmittedAt,
		LastUpdateAt:    r.LastUpdateAt,
		Resolution:      r.Resolution,
		ResolvedAt:      r.ResolvedAt,
		RejectionReason: r.RejectionReason,
		Photos:          r.Attachments.Photos,
		HasVoiceNote:    r.Attachments.HasVoiceNote,
		PhotoRefs:       pq.StringArray(r.Attachments.PhotoRefs),
		VoiceNoteRef:    r.Attachments.VoiceNoteRef,
	}
	if r.Location != nil {
		lat, lng := r.Location.Lat, r.Location.Lng
		rec.Lat, rec.Lng = &lat, &lng
	}
	if r.EstimatedResolution != nil {
		d := datatypes.Date(*r.EstimatedResolution)
		rec.EstimatedResolution = &d
	}
	return rec
}

func (r ReportRecord) toModel() model.Report {
	out := model.Report{
		ID:              r.ID,
		WaterSourceID:   r.WaterSourceID,
		ReporterName:    r.ReporterName,
		ContactInfo:     r.ContactInfo,
		AllowContact:    r.AllowContact,
		IssueType:       model.IssueType(r.IssueType),
		Description:     r.Description,
		Urgency:         model.Urgency(r.Urgency),
		AffectedPeople:  r.AffectedPeople,
		Status:          model.Status(r.Status),
		AssignedTo:      r.AssignedTo,
		SubmittedAt:     r.SubmittedAt,
		LastUpdateAt:    r.LastUpdateAt,
		Resolution:      r.Resolution,
		ResolvedAt:      r.ResolvedAt,
		RejectionReason: r.RejectionReason,
		Attachments: model.Attachments{
			Photos:       r.Photos,
			HasVoiceNote: r.HasVoiceNote,
			VoiceNoteRef: r.VoiceNoteRef,
		},
	}
	if len(r.PhotoRefs) > 0 {
		out.Attachments.PhotoRefs = []string(r.PhotoRefs)
	}
	if r.Lat != nil && r.Lng != nil {
		out.Location = &model.GeoPoint{Lat: *r.Lat, Lng: *r.Lng}
	}
	if r.EstimatedResolution != nil {
		eta := time.Time(*r.EstimatedResolution)
		out.EstimatedResolution = &eta
	}
	return out
}
