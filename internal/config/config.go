package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort     string
	SourcesFile string
	WebRoot     string

	CacheTTL      time.Duration
	RecencyWindow time.Duration

	FetchTimeout   time.Duration
	RequestTimeout time.Duration

	EnrichWorkers int
	EnrichMax     int

	CronSpec string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		SourcesFile: getEnv("SOURCES_FILE", "configs/sources.yaml"),
		WebRoot:     getEnv("WEB_ROOT", ""),

		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		RecencyWindow: getEnvDuration("RECENCY_WINDOW", 24*time.Hour),

		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 8*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 25*time.Second),

		EnrichWorkers: getEnvInt("ENRICH_WORKERS", 6),
		EnrichMax:     getEnvInt("ENRICH_MAX", 60),

		CronSpec: getEnv("CRON_SPEC", ""),
	}

	log.Printf("config loaded: port=%s ttl=%s window=%s sources=%s",
		cfg.AppPort, cfg.CacheTTL, cfg.RecencyWindow, cfg.SourcesFile)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
	}
	return def
}
