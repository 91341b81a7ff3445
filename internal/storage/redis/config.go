package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. RoomTTL is re-armed on every save, so a room
	// expires only after sitting idle for the full duration.
	// Zero disables expiry.
	RoomTTL    time.Duration
	NamesTTL   time.Duration
	HistoryTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		RoomTTL:      24 * time.Hour,
		NamesTTL:     30 * 24 * time.Hour,
		HistoryTTL:   0,
	}
}
