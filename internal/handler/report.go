package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/middleware"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

type ReportHandler struct {
	store *store.Store
}

func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// parseFilter reads the shared report filter from the query string. It
// returns a message for the first malformed parameter.
func parseFilter(c *gin.Context) (model.ReportFilter, string) {
	f := model.ReportFilter{
		Query:    c.Query("q"),
		Status:   model.StatusFilter(c.DefaultQuery("status", string(model.StatusAll))),
		SourceID: c.Query("sourceId"),
		Reporter: c.Query("reporter"),
	}
	if !f.Status.Valid() {
		return f, "invalid status filter"
	}
	if v := c.Query("urgency"); v != "" {
		u, ok := model.ParseUrgency(v)
		if !ok {
			return f, "invalid urgency filter"
		}
		f.Urgency = u
	}
	if v := c.Query("issueType"); v != "" {
		t, ok := model.ParseIssueType(v)
		if !ok {
			return f, "invalid issue type filter"
		}
		f.IssueType = t
	}
	return f, ""
}

// List returns one page of the reports matching the query filters
func (h *ReportHandler) List(c *gin.Context) {
	filter, msg := parseFilter(c)
	if msg != "" {
		badRequest(c, msg)
		return
	}
	page, limit := pagination(c)
	offset := (page - 1) * limit

	reports := make([]model.Report, 0, limit)
	totalCount := 0
	for r := range h.store.List(filter) {
		if totalCount >= offset && len(reports) < limit {
			reports = append(reports, r)
		}
		totalCount++
	}

	totalPages := (totalCount + limit - 1) / limit

	c.Header("X-Total-Count", strconv.Itoa(totalCount))
	c.JSON(http.StatusOK, gin.H{
		"data":       reports,
		"page":       page,
		"limit":      limit,
		"totalCount": totalCount,
		"totalPages": totalPages,
	})
}

// Counts returns per-status counts for the status tabs
func (h *ReportHandler) Counts(c *gin.Context) {
	filter, msg := parseFilter(c)
	if msg != "" {
		badRequest(c, msg)
		return
	}
	// tab counts ignore the selected tab
	filter.Status = model.StatusAll
	c.JSON(http.StatusOK, h.store.CountByStatus(filter))
}

// Attention returns new and critical reports for the overview
func (h *ReportHandler) Attention(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultAttentionLimit)))
	if err != nil {
		limit = store.DefaultAttentionLimit
	}
	c.JSON(http.StatusOK, gin.H{"data": h.store.Attention(limit)})
}

func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Create stores a citizen submission
func (h *ReportHandler) Create(c *gin.Context) {
	var req model.NewReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	report, err := h.store.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordReportCreated(report.IssueType, report.Urgency)
	log.WithFields(log.Fields{
		"report":  report.ID,
		"source":  report.WaterSourceID,
		"urgency": report.Urgency,
	}).Info("report submitted")

	c.JSON(http.StatusCreated, report)
}

type UpdateStatusRequest struct {
	Status              string `json:"status" binding:"required"`
	AssignedTo          string `json:"assignedTo"`
	EstimatedResolution string `json:"estimatedResolution"`
	Resolution          string `json:"resolution"`
	RejectionReason     string `json:"rejectionReason"`
}

// UpdateStatus moves a report to another lifecycle state
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	// unknown codes are rejected by the store as validation errors
	to, _ := model.ParseStatus(req.Status)

	payload := model.StatusPayload{
		AssignedTo:      req.AssignedTo,
		Resolution:      req.Resolution,
		RejectionReason: req.RejectionReason,
	}
	if req.EstimatedResolution != "" {
		eta, err := parseDate(req.EstimatedResolution)
		if err != nil {
			badRequest(c, "estimatedResolution: expected RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		payload.EstimatedResolution = &eta
	}

	from, report, err := h.store.Transition(c.Param("id"), to, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordTransition(from, report.Status)
	log.WithFields(log.Fields{
		"report": report.ID,
		"from":   from,
		"to":     report.Status,
	}).Info("report status changed")

	c.JSON(http.StatusOK, report)
}

type AssignRequest struct {
	AssignedTo string `json:"assignedTo"`
}

// Assign records who handles a report
func (h *ReportHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	report, err := h.store.Assign(c.Param("id"), req.AssignedTo)
	if err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"report":   report.ID,
		"assignee": *report.AssignedTo,
	}).Info("report assigned")

	c.JSON(http.StatusOK, report)
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
