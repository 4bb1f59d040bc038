package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/cache"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/config"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/database"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/handler"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/limiter"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/logging"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/middleware"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/scheduler"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/seed"
	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/store"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	// Initialize database when configured
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	snap, err := initialSnapshot(db, cfg.SeedFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load initial data")
	}

	reports, err := store.New(snap.Sources, snap.Reports, store.WithStrictAssignment(cfg.StrictAssignment))
	if err != nil {
		log.WithError(err).Fatal("Failed to build report store")
	}
	log.WithFields(log.Fields{
		"sources": len(snap.Sources),
		"reports": reports.Len(),
	}).Info("Report store ready")

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to Redis, continuing without cache and rate limits")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var statsCache handler.StatsCache
	var rateLimiter *limiter.Limiter
	if redisCache != nil {
		statsCache = redisCache
		if cfg.RateLimitEnabled {
			rateLimiter = limiter.NewLimiter(redisCache)
		}
	}

	// Initialize handlers
	handlers := handler.Handlers{
		Reports:   handler.NewReportHandler(reports),
		Export:    handler.NewExportHandler(reports),
		Sources:   handler.NewSourceHandler(reports),
		Dashboard: handler.NewDashboardHandler(reports, statsCache, cfg.StatsCacheTTL),
		Limits:    handler.NewLimitsHandler(rateLimiter),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := scheduler.NewStatsPublisher(reports, cfg.StatsInterval)
	go publisher.Start(ctx)

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "revision": reports.Revision()})
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stats publisher status
	r.GET("/scheduler/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, publisher.Status())
	})

	handler.RegisterRoutes(r.Group("/api"), handlers, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("API server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
	publisher.Stop()
}

// initialSnapshot prefers the database contents and falls back to the seed
// file or the built-in sample when the database is unset or empty.
func initialSnapshot(db *gorm.DB, seedFile string) (seed.Snapshot, error) {
	if db != nil {
		snap, err := database.LoadSnapshot(context.Background(), db)
		if err != nil {
			return seed.Snapshot{}, err
		}
		if len(snap.Sources) > 0 {
			log.Info("Loaded data from database")
			return snap, nil
		}
		log.Info("Database is empty, using seed data")
	}
	return seed.Load(seedFile)
}
