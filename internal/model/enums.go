package model

import "strings"

// Status is the lifecycle state of a report.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// Statuses lists every report status in dashboard order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusResolved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// ParseStatus accepts the status code in any case.
func ParseStatus(v string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}

// Urgency is the severity assigned by the reporter or during triage.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Urgencies lists urgency levels from most to least severe, the order the dashboard charts use.
var Urgencies = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

func (u Urgency) Label() string {
	switch u {
	case UrgencyLow:
		return "Low"
	case UrgencyMedium:
		return "Medium"
	case UrgencyHigh:
		return "High"
	case UrgencyCritical:
		return "Critical"
	}
	return string(u)
}

func ParseUrgency(v string) (Urgency, bool) {
	u := Urgency(strings.ToLower(strings.TrimSpace(v)))
	return u, u.Valid()
}

// IssueType classifies the problem reported at a water source.
type IssueType string

const (
	IssueNoWaterFlow          IssueType = "no_water_flow"
	IssueContaminatedWater    IssueType = "contaminated_water"
	IssueBrokenPump           IssueType = "broken_pump"
	IssueLowPressure          IssueType = "low_pressure"
	IssueStrangeTaste         IssueType = "strange_taste"
	IssueVisibleContamination IssueType = "visible_contamination"
	IssueInfrastructureDamage IssueType = "infrastructure_damage"
	IssueOther                IssueType = "other"
)

var issueLabels = map[IssueType]string{
	IssueNoWaterFlow:          "No water flow",
	IssueContaminatedWater:    "Contaminated water",
	IssueBrokenPump:           "Broken pump/tap",
	IssueLowPressure:          "Low water pressure",
	IssueStrangeTaste:         "Strange taste/odor",
	IssueVisibleContamination: "Visible contamination",
	IssueInfrastructureDamage: "Infrastructure damage",
	IssueOther:                "Other",
}

// IssueTypes lists the issue types in the order the report form offers them.
var IssueTypes = []IssueType{
	IssueNoWaterFlow,
	IssueContaminatedWater,
	IssueBrokenPump,
	IssueLowPressure,
	IssueStrangeTaste,
	IssueVisibleContamination,
	IssueInfrastructureDamage,
	IssueOther,
}

func (t IssueType) Valid() bool {
	_, ok := issueLabels[t]
	return ok
}

func (t IssueType) Label() string {
	if label, ok := issueLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseIssueType accepts either the code ("low_pressure") or the form label
// ("Low water pressure"), ignoring case.
func ParseIssueType(v string) (IssueType, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	code := IssueType(strings.ToLower(v))
	if code.Valid() {
		return code, true
	}
	for t, label := range issueLabels {
		if strings.EqualFold(label, v) {
			return t, true
		}
	}
	return "", false
}

// SourceStatus is the operating condition of a water source.
type SourceStatus string

const (
	SourceFunctional   SourceStatus = "functional"
	SourceBroken       SourceStatus = "broken"
	SourceContaminated SourceStatus = "contaminated"
	SourceDry          SourceStatus = "dry"
)

func (s SourceStatus) Valid() bool {
	switch s {
	case SourceFunctional, SourceBroken, SourceContaminated, SourceDry:
		return true
	}
	return false
}

func ParseSourceStatus(v string) (SourceStatus, bool) {
	s := SourceStatus(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}
