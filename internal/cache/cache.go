// Package cache provides AggregateCache implementations: a Redis-backed one
// for deployments and an in-memory one for development and tests.
package cache

import (
	"log"

	"conferencecentral/internal/domain"
)

// Config selects and configures a cache provider.
type Config struct {
	Provider  string // "redis" or "memory"
	RedisAddr string
}

// New creates a cache from config. Provider "redis" connects to Redis;
// "memory" or unknown uses the in-process cache.
func New(cfg Config) (domain.AggregateCache, error) {
	switch cfg.Provider {
	case "redis":
		return NewRedis(cfg.RedisAddr)
	case "memory":
		return NewMemory(), nil
	default:
		log.Printf("[CACHE] Unknown cache provider %q, using memory", cfg.Provider)
		return NewMemory(), nil
	}
}
