package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr       string
	BackendBaseURL string
	RequestTimeout time.Duration
	RedisAddr      string
	RedisPrefix    string
	TokenTTL       time.Duration
	LoginRedirect  string
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", "0.0.0.0:8080"),
		BackendBaseURL: getenv("API_BASE_URL", "http://localhost:8000"),
		RequestTimeout: getenvDuration("API_TIMEOUT", 10*time.Second),
		RedisAddr:      getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPrefix:    getenv("REDIS_PREFIX", "registros:"),
		TokenTTL:       getenvDuration("TOKEN_TTL", time.Hour),
		LoginRedirect:  getenv("LOGIN_REDIRECT", "/auth/login"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		// Plain numbers are read as milliseconds, the unit the UI config
		// historically used.
		if ms, err := strconv.Atoi(val); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
