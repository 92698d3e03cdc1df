package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DB       DatabaseConfig
	Cache    CacheConfig
	Notify   NotifyConfig
	SeedPath string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type CacheConfig struct {
	// Redis address for the route-plan cache; empty disables caching.
	RedisAddr string
	PlanTTL   time.Duration
}

type NotifyConfig struct {
	// AMQP URL for the outbound-email queue; empty falls back to the
	// console notifier.
	AMQPURL     string
	Queue       string
	SendTimeout time.Duration
}

// Load reads configuration from the environment with local-run defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		DB: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Cache: CacheConfig{
			RedisAddr: os.Getenv("REDIS_ADDR"),
			PlanTTL:   getEnvDuration("PLAN_CACHE_TTL", 15*time.Minute),
		},
		Notify: NotifyConfig{
			AMQPURL:     os.Getenv("AMQP_URL"),
			Queue:       getEnv("NOTIFY_QUEUE", "outbound-email"),
			SendTimeout: getEnvDuration("NOTIFY_SEND_TIMEOUT", 10*time.Second),
		},
		SeedPath: getEnv("SEED_PATH", "data/seeds/network.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
