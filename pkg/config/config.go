package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"avaliacoes/pkg/database"
)

type Config struct {
	Environment     string
	Port            string
	DB              database.Config
	StaticDir       string
	BodyLimitBytes  int64
	CORSOrigins     []string
	RateLimitRPS    int
	LogLevel        string
	LogFile         string
	LogMaxSizeMB    int
	LogMaxFiles     int
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", "3000"),
		DB:              database.DefaultConfig(),
		StaticDir:       getEnv("STATIC_DIR", "public"),
		BodyLimitBytes:  int64(getInt("BODY_LIMIT_BYTES", 1<<20)),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPS:    getInt("RATE_LIMIT_RPS", 0),
		LogLevel:        getEnv("LOG_LEVEL", ""),
		LogFile:         getEnv("LOG_FILE", ""),
		LogMaxSizeMB:    getInt("LOG_MAX_SIZE_MB", 10),
		LogMaxFiles:     getInt("LOG_MAX_FILES", 5),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
