package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	DBDriver        string // mysql | sqlite
	SQLitePath      string
	RedisURL        string
	LayoutCacheTTL  time.Duration
	CORSOrigins     []string
	RateLimit       float64
	RateBurst       int
	MonitorInterval time.Duration
	SlotGranularity int
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(envOrDefault(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(envOrDefault(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the service configuration from the environment. Call
// godotenv.Load first when a .env file should be honoured.
func Load() Config {
	granularity := envInt("SLOT_GRANULARITY", 60)
	if granularity != 15 {
		granularity = 60
	}
	return Config{
		Port:            envOrDefault("PORT", "8080"),
		GinMode:         envOrDefault("GIN_MODE", "debug"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		DBDriver:        strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		SQLitePath:      envOrDefault("SQLITE_PATH", "diary.db"),
		RedisURL:        envOrDefault("REDIS_URL", ""),
		LayoutCacheTTL:  envDuration("LAYOUT_CACHE_TTL", 10*time.Minute),
		CORSOrigins:     splitList(envOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		RateLimit:       envFloat("RATE_LIMIT_RPS", 50),
		RateBurst:       envInt("RATE_LIMIT_BURST", 100),
		MonitorInterval: envDuration("MONITOR_INTERVAL", 500*time.Millisecond),
		SlotGranularity: granularity,
	}
}
