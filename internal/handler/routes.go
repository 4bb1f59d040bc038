package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/limiter"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/middleware"
)

type Handlers struct {
	Reports   *ReportHandler
	Export    *ExportHandler
	Sources   *SourceHandler
	Dashboard *DashboardHandler
	Limits    *LimitsHandler
}

// RegisterRoutes mounts the API under api. A nil limiter disables rate limiting.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, l *limiter.Limiter) {
	search := middleware.RateLimit(l, limiter.ActionSearch)
	general := middleware.RateLimit(l, limiter.ActionDefault)

	// Reports
	api.GET("/reports", search, h.Reports.List)
	api.GET("/reports/counts", search, h.Reports.Counts)
	api.GET("/reports/attention", general, h.Reports.Attention)
	api.GET("/reports/export", middleware.RateLimit(l, limiter.ActionExport), h.Export.Export)
	api.GET("/reports/:id", general, h.Reports.Get)
	api.POST("/reports", middleware.RateLimit(l, limiter.ActionSubmit), h.Reports.Create)
	api.PATCH("/reports/:id/status", general, h.Reports.UpdateStatus)
	api.PATCH("/reports/:id/assignee", general, h.Reports.Assign)

	// Water sources
	api.GET("/sources", search, h.Sources.List)
	api.GET("/sources/nearby", search, h.Sources.Nearby)
	api.GET("/sources/geojson", general, h.Sources.GeoJSON)
	api.GET("/sources/:id", general, h.Sources.Get)

	// Dashboard
	api.GET("/dashboard/stats", general, h.Dashboard.Stats)
	api.GET("/dashboard/overview", general, h.Dashboard.Overview)

	api.GET("/limits", h.Limits.GetLimits)
}
