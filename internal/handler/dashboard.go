package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/cache"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/limiter"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/middleware"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

// StatsCache stores rendered dashboard statistics. *cache.RedisCache satisfies it.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type DashboardHandler struct {
	store    *store.Store
	cache    StatsCache
	ttl      time.Duration
	instance string
}

// NewDashboardHandler accepts a nil cache; statistics are then computed on
// every request.
func NewDashboardHandler(s *store.Store, c StatsCache, ttl time.Duration) *DashboardHandler {
	return &DashboardHandler{store: s, cache: c, ttl: ttl, instance: uuid.NewString()}
}

// Stats returns the dashboard aggregate. The cache key carries the handler
// instance and the store revision, so a cached entry always matches the
// data of this process.
func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, h.store.Aggregate())
		return
	}

	ctx := c.Request.Context()
	key := cache.StatsKey(h.instance, h.store.Revision())

	if cached, err := h.cache.Get(ctx, key); err == nil {
		middleware.RecordDashboardCache(true)
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}
	middleware.RecordDashboardCache(false)

	stats := h.store.Aggregate()
	data, err := json.Marshal(stats)
	if err != nil {
		respondError(c, err)
		return
	}
	// skip the write if a mutation landed between Revision and Aggregate
	if cache.StatsKey(h.instance, h.store.Revision()) == key {
		if err := h.cache.Set(ctx, key, data, h.ttl); err != nil {
			log.WithError(err).Warn("failed to cache dashboard stats")
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Overview())
}

type LimitsHandler struct {
	limiter *limiter.Limiter
}

func NewLimitsHandler(l *limiter.Limiter) *LimitsHandler {
	return &LimitsHandler{limiter: l}
}

// GetLimits lists the configured rate limits, or reports them disabled.
func (h *LimitsHandler) GetLimits(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "limits": []limiter.LimitInfo{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "limits": h.limiter.Limits()})
}
