package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the staffing
// report service.
type Config struct {
	HTTPPort       int
	SQLiteDSN      string
	APIKeyHash     string
	ReportCacheTTL time.Duration
	ReportCacheMax int
	MaxUploadBytes int64
	LogLevel       slog.Level
}

// AuthEnabled reports whether requests must carry an API key.
func (c Config) AuthEnabled() bool {
	return c.APIKeyHash != ""
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for every optional field and reports all
// malformed entries at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		SQLiteDSN:      "file:staffreport.db",
		ReportCacheTTL: 5 * time.Minute,
		ReportCacheMax: 256,
		MaxUploadBytes: 10 << 20,
		LogLevel:       slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("STAFFREPORT_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "STAFFREPORT_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("STAFFREPORT_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if hash := strings.TrimSpace(os.Getenv("STAFFREPORT_API_KEY_HASH")); hash != "" {
		if !strings.HasPrefix(hash, "$argon2id$") {
			invalid = append(invalid, "STAFFREPORT_API_KEY_HASH")
		} else {
			cfg.APIKeyHash = hash
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("STAFFREPORT_REPORT_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "STAFFREPORT_REPORT_CACHE_TTL")
		} else {
			cfg.ReportCacheTTL = ttl
		}
	}

	if sizeValue := strings.TrimSpace(os.Getenv("STAFFREPORT_REPORT_CACHE_SIZE")); sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size <= 0 {
			invalid = append(invalid, "STAFFREPORT_REPORT_CACHE_SIZE")
		} else {
			cfg.ReportCacheMax = size
		}
	}

	if uploadValue := strings.TrimSpace(os.Getenv("STAFFREPORT_MAX_UPLOAD_BYTES")); uploadValue != "" {
		limit, err := strconv.ParseInt(uploadValue, 10, 64)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "STAFFREPORT_MAX_UPLOAD_BYTES")
		} else {
			cfg.MaxUploadBytes = limit
		}
	}

	if levelValue := strings.TrimSpace(os.Getenv("STAFFREPORT_LOG_LEVEL")); levelValue != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelValue)); err != nil {
			invalid = append(invalid, "STAFFREPORT_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
