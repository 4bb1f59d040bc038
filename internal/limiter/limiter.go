package limiter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/cache"
)

// Action names used by the API routes.
const (
	ActionSubmit  = "submit"
	ActionExport  = "export"
	ActionSearch  = "search"
	ActionDefault = "default"
)

type ActionConfig struct {
	Limit  int64
	Window time.Duration
}

var DefaultLimits = map[string]ActionConfig{
	ActionSubmit:  {Limit: 10, Window: time.Minute},
	ActionExport:  {Limit: 10, Window: time.Minute},
	ActionSearch:  {Limit: 120, Window: time.Minute},
	ActionDefault: {Limit: 100, Window: time.Minute},
}

// Counter is a fixed-window counter store. *cache.RedisCache satisfies it.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Limiter struct {
	counter Counter
	limits  map[string]ActionConfig
	now     func() time.Time
}

type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

func NewLimiter(counter Counter) *Limiter {
	return &Limiter{counter: counter, limits: DefaultLimits, now: time.Now}
}

// Config returns the limit for action, falling back to the default bucket.
func (l *Limiter) Config(action string) ActionConfig {
	if cfg, ok := l.limits[action]; ok {
		return cfg
	}
	return l.limits[ActionDefault]
}

func (l *Limiter) Check(ctx context.Context, clientID, action string) (*CheckResult, error) {
	config := l.Config(action)
	key := cache.RateKey(clientID, action)

	count, err := l.counter.Incr(ctx, key, config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}

	ttl, err := l.counter.TTL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get TTL: %w", err)
	}
	if ttl < 0 {
		ttl = config.Window
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &CheckResult{
		Allowed:   count <= config.Limit,
		Remaining: remaining,
		ResetAt:   l.now().Add(ttl).Unix(),
		Limit:     config.Limit,
	}, nil
}

// LimitInfo describes one configured action for the limits endpoint.
type LimitInfo struct {
	Action        string `json:"action"`
	Limit         int64  `json:"limit"`
	WindowSeconds int    `json:"window_seconds"`
}

// Limits lists the configured actions sorted by name.
func (l *Limiter) Limits() []LimitInfo {
	out := make([]LimitInfo, 0, len(l.limits))
	for action, config := range l.limits {
		out = append(out, LimitInfo{
			Action:        action,
			Limit:         config.Limit,
			WindowSeconds: int(config.Window.Seconds()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}
