package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog API
	CatalogBaseURL string        // ex: https://api.mercadolibre.com
	SiteID         string        // catalog region code (ex: "MLM")
	AccessToken    string        // fixed, manually-rotated credential
	CatalogTimeout time.Duration // per-request timeout for catalog calls

	HistoryLimit int // max search-history entries kept (default: 10)

	// Badge rules
	BadgeFile           string        // path to badge rules yaml (optional, empty = badges disabled)
	BadgeReloadInterval time.Duration // interval to reload badge rules (default: 1h)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MELISEARCH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MELISEARCH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MELISEARCH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MELISEARCH_PRETTY_LOG", true),

		// Catalog API
		CatalogBaseURL: getenv("MELISEARCH_CATALOG_BASE_URL", "https://api.mercadolibre.com"),
		SiteID:         getenv("MELISEARCH_SITE_ID", "MLM"),
		AccessToken:    requireEnv("MELISEARCH_ACCESS_TOKEN"),
		CatalogTimeout: mustDuration("MELISEARCH_CATALOG_TIMEOUT", 10*time.Second),

		HistoryLimit: getenvInt("MELISEARCH_HISTORY_LIMIT", 10),

		// Badge rules
		BadgeFile:           getenv("MELISEARCH_BADGE_FILE", ""), // optional, empty = badges disabled
		BadgeReloadInterval: mustDuration("MELISEARCH_BADGE_RELOAD_INTERVAL", time.Hour),

		// Redis settings
		RedisAddr:           requireEnv("MELISEARCH_REDIS_ADDR"),
		RedisUser:           getenv("MELISEARCH_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("MELISEARCH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MELISEARCH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.AccessToken = "***REDACTED***"
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid duration value for %s: %s", key, v))
		}
		return d
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid boolean value for %s: %s", key, v))
		}
		return b
	}
	return def
}
