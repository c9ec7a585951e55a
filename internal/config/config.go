package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	UpstreamBaseURL string
	UpstreamToken   string
	UpstreamTimeout time.Duration
	MaxRetries      int

	// default and search-endpoint token bucket settings
	UpstreamRPS   float64
	UpstreamBurst int
	SearchRPS     float64
	SearchBurst   int

	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration

	HandoffTTL time.Duration
}

// Load reads configuration from the environment, honoring a .env file when
// one is present.
func Load() Config {
	godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:9000/api"),
		UpstreamToken:   getEnv("UPSTREAM_TOKEN", ""),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		MaxRetries:      getEnvInt("UPSTREAM_MAX_RETRIES", 3),

		UpstreamRPS:   getEnvFloat("UPSTREAM_RPS", 10),
		UpstreamBurst: getEnvInt("UPSTREAM_BURST", 20),
		SearchRPS:     getEnvFloat("SEARCH_RPS", 20),
		SearchBurst:   getEnvInt("SEARCH_BURST", 40),

		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),

		HandoffTTL: getEnvDuration("HANDOFF_TTL", 30*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
