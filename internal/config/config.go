package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Addr                 string
	StorageDriver        string
	DatabaseURL          string
	RedisAddr            string
	RedisPassword        string
	RedisKeyPrefix       string
	JWTSecret            string
	JWTIssuer            string
	AccessTTLSeconds     int64
	RefreshTTLSeconds    int64
	MediaStoragePath     string
	MetricsDiskPath      string
	MetricsSampleSeconds int
	OverdueSweepSeconds  int
	CorsOrigins          []string
}

func Load() Config {
	cfg := Config{
		Addr:                 envOr("ADDR", ":8080"),
		StorageDriver:        strings.ToLower(envOr("STORAGE_DRIVER", "memory")),
		DatabaseURL:          envOr("DATABASE_URL", ""),
		RedisAddr:            envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        envOr("REDIS_PASSWORD", ""),
		RedisKeyPrefix:       envOr("REDIS_KEY_PREFIX", "ascenda"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "ascenda"),
		AccessTTLSeconds:     int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds:    int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		MediaStoragePath:     envOr("MEDIA_STORAGE_PATH", "storage/media"),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
		OverdueSweepSeconds:  envOrInt("OVERDUE_SWEEP_INTERVAL", 3600),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
	if cfg.StorageDriver == "postgres" && cfg.DatabaseURL == "" {
		panic("missing env var: DATABASE_URL")
	}
	return cfg
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
