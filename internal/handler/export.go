package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

type ExportHandler struct {
	store *store.Store
	now   func() time.Time
}

func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{store: s, now: time.Now}
}

// Export writes the filtered report list as json, csv or markdown
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	filter, msg := parseFilter(c)
	if msg != "" {
		badRequest(c, msg)
		return
	}

	switch format {
	case "json", "csv", "md", "markdown":
	default:
		badRequest(c, "Invalid format. Use json, csv, or md")
		return
	}

	reports := store.Collect(h.store.List(filter))
	name := "reports-" + h.now().UTC().Format("20060102")

	switch format {
	case "json":
		h.exportJSON(c, name, reports)
	case "csv":
		h.exportCSV(c, name, reports)
	default:
		h.exportMarkdown(c, name, reports)
	}
}

func (h *ExportHandler) exportJSON(c *gin.Context, name string, reports []model.Report) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", name))
	c.JSON(http.StatusOK, gin.H{"data": reports, "totalCount": len(reports)})
}

func (h *ExportHandler) exportCSV(c *gin.Context, name string, reports []model.Report) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{
		"ID", "Water Source", "Reporter", "Issue Type", "Urgency", "Status",
		"Assigned To", "Affected People", "Submitted At", "Last Update", "Resolution",
	})

	for _, r := range reports {
		writer.Write([]string{
			r.ID,
			h.sourceLabel(r.WaterSourceID),
			r.ReporterName,
			r.IssueType.Label(),
			r.Urgency.Label(),
			r.Status.Label(),
			deref(r.AssignedTo),
			strconv.Itoa(r.AffectedCount()),
			r.SubmittedAt.UTC().Format(time.RFC3339),
			r.LastUpdateAt.UTC().Format(time.RFC3339),
			deref(r.Resolution),
		})
	}

	writer.Flush()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *ExportHandler) exportMarkdown(c *gin.Context, name string, reports []model.Report) {
	var buf bytes.Buffer

	buf.WriteString("# Water Issue Reports\n\n")
	buf.WriteString(fmt.Sprintf("**Exported:** %s\n\n", h.now().UTC().Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("**Reports:** %d\n\n", len(reports)))

	for _, r := range reports {
		buf.WriteString(fmt.Sprintf("## %s: %s\n\n", r.ID, r.IssueType.Label()))
		buf.WriteString(fmt.Sprintf("**Status:** %s | **Urgency:** %s\n\n", r.Status.Label(), r.Urgency.Label()))
		buf.WriteString(fmt.Sprintf("**Water Source:** %s\n\n", h.sourceLabel(r.WaterSourceID)))
		buf.WriteString(fmt.Sprintf("**Reporter:** %s\n\n", r.ReporterName))
		buf.WriteString(fmt.Sprintf("**Submitted:** %s\n\n", r.SubmittedAt.UTC().Format("2006-01-02 15:04")))
		if r.AssignedTo != nil {
			buf.WriteString(fmt.Sprintf("**Assigned to:** %s\n\n", *r.AssignedTo))
		}
		buf.WriteString(r.Description + "\n\n")
		if r.Resolution != nil {
			buf.WriteString(fmt.Sprintf("**Resolution:** %s\n\n", *r.Resolution))
		}
		if r.RejectionReason != nil {
			buf.WriteString(fmt.Sprintf("**Rejected:** %s\n\n", *r.RejectionReason))
		}
		buf.WriteString("---\n\n")
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.md", name))
	c.Data(http.StatusOK, "text/markdown", buf.Bytes())
}

// sourceLabel prefers the source name and falls back to the raw reference
// for sources that are no longer registered.
func (h *ExportHandler) sourceLabel(id string) string {
	if name := h.store.SourceName(id); name != "" {
		return name
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
