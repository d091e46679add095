package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath string

	LeetCodeBaseURL string
	SessionCookie   string
	CSRFToken       string
	RequestTimeout  int // milliseconds
	RateLimitRPS    int

	// Delay before the fallback page scan, to let asynchronous rendering
	// settle. One-shot, not polled.
	FallbackSettleMs int

	ServeAddr string
	UserAgent string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath: getEnv("DB_PATH", filepath.Join(cwd, "data", "leetfolio.db")),

		LeetCodeBaseURL: getEnv("LEETCODE_BASE_URL", "https://leetcode.com"),
		SessionCookie:   getEnv("LEETCODE_SESSION", ""),
		CSRFToken:       getEnv("LEETCODE_CSRF_TOKEN", ""),
		RequestTimeout:  getEnvInt("LEETCODE_TIMEOUT_MS", 15000),
		RateLimitRPS:    getEnvInt("LEETCODE_RATE_LIMIT_RPS", 2),

		FallbackSettleMs: getEnvInt("FALLBACK_SETTLE_MS", 800),

		ServeAddr: getEnv("SERVE_ADDR", ":8642"),
		UserAgent: getEnv("HTTP_USER_AGENT", "leetfolio/0.1"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
