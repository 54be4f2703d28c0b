package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jloaiza/melisearch/internal/logger"
	"github.com/jloaiza/melisearch/internal/search"
)

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	TimeNow            func() time.Time     // for testing, defaults to time.Now
	RedisClient        *redis.Client        // Redis client connection (readiness checks)
	Orchestrator       *search.Orchestrator // search engine entry point
	BadgeReloadTrigger chan struct{}        // channel to trigger manual badge rules reload (nil if badges disabled)
}
