package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/geo"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

const defaultRadiusKm = 5.0

type SourceHandler struct {
	store *store.Store
}

func NewSourceHandler(s *store.Store) *SourceHandler {
	return &SourceHandler{store: s}
}

func (h *SourceHandler) List(c *gin.Context) {
	status := model.SourceStatusFilter(c.DefaultQuery("status", string(model.StatusAll)))
	if !status.Valid() {
		badRequest(c, "invalid status filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.store.SearchSources(c.Query("q"), status)})
}

func (h *SourceHandler) Get(c *gin.Context) {
	src, err := h.store.Source(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, src)
}

// Nearby returns sources within radiusKm (default 5) of lat/lng
func (h *SourceHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || !model.ValidLat(lat) {
		badRequest(c, "lat must be a number between -90 and 90")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || !model.ValidLng(lng) {
		badRequest(c, "lng must be a number between -180 and 180")
		return
	}
	radius := defaultRadiusKm
	if v := c.Query("radiusKm"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
			badRequest(c, "radiusKm must be a positive number")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     h.store.NearbySources(model.GeoPoint{Lat: lat, Lng: lng}, radius),
		"radiusKm": radius,
	})
}

// GeoJSON renders every source as a map feature
func (h *SourceHandler) GeoJSON(c *gin.Context) {
	fc := geo.SourceFeatures(h.store.Sources())
	data, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}
