package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

var (
	reportsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "water_reports",
			Help: "Number of reports per status",
		},
		[]string{"status"},
	)

	urgencyGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "water_reports_by_urgency",
			Help: "Number of reports per urgency",
		},
		[]string{"urgency"},
	)

	affectedGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "water_affected_people",
			Help: "Sum of affected people across all reports",
		},
	)

	sourceOpenGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "water_source_open_reports",
			Help: "Open reports per water source",
		},
		[]string{"source"},
	)
)

// StatsPublisher periodically recomputes the dashboard aggregate and exports
// it as Prometheus gauges.
type StatsPublisher struct {
	store    *store.Store
	interval time.Duration

	mu            sync.Mutex
	running       bool
	runs          int
	lastRevision  uint64
	lastPublished time.Time
	stopChan      chan struct{}
}

func NewStatsPublisher(s *store.Store, interval time.Duration) *StatsPublisher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatsPublisher{
		store:    s,
		interval: interval,
	}
}

// Start publishes once immediately and then on every tick until ctx is
// cancelled or Stop is called. It blocks; run it in a goroutine. A stopped
// publisher may be started again.
func (p *StatsPublisher) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	stop := make(chan struct{})
	p.stopChan = stop
	p.mu.Unlock()

	log.Infof("[Stats] Starting with interval %v", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Publish()
	for {
		select {
		case <-ctx.Done():
			log.Info("[Stats] Context cancelled, stopping")
			p.markStopped(stop)
			return
		case <-stop:
			log.Info("[Stats] Stop signal received")
			return
		case <-ticker.C:
			p.Publish()
		}
	}
}

func (p *StatsPublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		close(p.stopChan)
		p.running = false
		log.Info("[Stats] Stopped")
	}
}

// markStopped clears running unless a newer Start has already replaced stop.
func (p *StatsPublisher) markStopped(stop chan struct{}) {
	p.mu.Lock()
	if p.stopChan == stop {
		p.running = false
	}
	p.mu.Unlock()
}

// Publish refreshes every gauge from the current store contents.
func (p *StatsPublisher) Publish() {
	revision := p.store.Revision()
	stats := p.store.Aggregate()

	for _, slice := range stats.StatusChart {
		reportsGauge.WithLabelValues(slice.Key).Set(float64(slice.Value))
	}
	for _, slice := range stats.UrgencyChart {
		urgencyGauge.WithLabelValues(slice.Key).Set(float64(slice.Value))
	}
	affectedGauge.Set(float64(stats.TotalAffectedPeople))

	for _, src := range p.store.Sources() {
		sourceOpenGauge.WithLabelValues(src.ID).Set(float64(src.OpenReportCount))
	}

	p.mu.Lock()
	p.runs++
	p.lastRevision = revision
	p.lastPublished = time.Now()
	p.mu.Unlock()

	log.WithFields(log.Fields{
		"revision": revision,
		"reports":  stats.Counts.Total,
	}).Debug("[Stats] Published")
}

// Status returns current publisher status
func (p *StatsPublisher) Status() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := map[string]interface{}{
		"running":      p.running,
		"interval":     p.interval.String(),
		"runs":         p.runs,
		"lastRevision": p.lastRevision,
	}
	if !p.lastPublished.IsZero() {
		status["lastPublishedAt"] = p.lastPublished.UTC().Format(time.RFC3339)
	}
	return status
}
