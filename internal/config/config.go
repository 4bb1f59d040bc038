package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	DatabaseURL      string
	SeedFile         string
	RedisURL         string
	RateLimitEnabled bool
	StatsInterval    time.Duration
	StatsCacheTTL    time.Duration
	StrictAssignment bool
	LogLevel         string
	LogFormat        string
	AllowedOrigins   []string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "4000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SeedFile:         getEnv("SEED_FILE", ""),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		RateLimitEnabled: getBool("RATE_LIMIT_ENABLED", true),
		StatsInterval:    getDuration("STATS_INTERVAL", 30*time.Second),
		StatsCacheTTL:    getDuration("STATS_CACHE_TTL", time.Minute),
		StrictAssignment: getBool("STRICT_ASSIGNMENT", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		AllowedOrigins:   getList("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
