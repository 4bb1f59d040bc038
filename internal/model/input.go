package model

import "time"

// NewReportInput carries a citizen submission. IssueType and Urgency are raw
// strings because they arrive straight from the form; the store parses them.
type NewReportInput struct {
	WaterSourceID  string    `json:"waterSourceId"`
	Location       *GeoPoint `json:"location"`
	ReporterName   string    `json:"reporterName"`
	ContactInfo    string    `json:"contactInfo"`
	AllowContact   bool      `json:"allowContact"`
	IssueType      string    `json:"issueType"`
	Description    string    `json:"description"`
	Urgency        string    `json:"urgency"`
	AffectedPeople *int      `json:"affectedPeople"`
	PhotoRefs      []string  `json:"photoRefs"`
	VoiceNoteRef   string    `json:"voiceNoteRef"`
}

// StatusPayload holds the fields a status transition may require.
type StatusPayload struct {
	AssignedTo          string     `json:"assignedTo"`
	EstimatedResolution *time.Time `json:"estimatedResolution"`
	Resolution          string     `json:"resolution"`
	RejectionReason     string     `json:"rejectionReason"`
}

// StatusFilter is either "all" or a single status.
type StatusFilter string

const StatusAll StatusFilter = "all"

func (f StatusFilter) Matches(s Status) bool {
	return f == "" || f == StatusAll || Status(f) == s
}

func (f StatusFilter) Valid() bool {
	return f == "" || f == StatusAll || Status(f).Valid()
}

// SourceStatusFilter is either "all" or a single water source status.
type SourceStatusFilter string

func (f SourceStatusFilter) Matches(s SourceStatus) bool {
	return f == "" || f == SourceStatusFilter(StatusAll) || SourceStatus(f) == s
}

func (f SourceStatusFilter) Valid() bool {
	return f == "" || f == SourceStatusFilter(StatusAll) || SourceStatus(f).Valid()
}

// ReportFilter is the predicate shared by every report view. Zero values match everything.
type ReportFilter struct {
	Query     string
	Status    StatusFilter
	SourceID  string
	Urgency   Urgency
	IssueType IssueType
	Reporter  string
}

// StatusCounts backs the status tabs and the dashboard counters.
type StatusCounts struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}

func (c *StatusCounts) Add(s Status) {
	c.Total++
	switch s {
	case StatusNew:
		c.New++
	case StatusInProgress:
		c.InProgress++
	case StatusResolved:
		c.Resolved++
	case StatusRejected:
		c.Rejected++
	}
}

func (c StatusCounts) Of(s Status) int {
	switch s {
	case StatusNew:
		return c.New
	case StatusInProgress:
		return c.InProgress
	case StatusResolved:
		return c.Resolved
	case StatusRejected:
		return c.Rejected
	}
	return 0
}
