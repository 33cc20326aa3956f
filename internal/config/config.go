package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// runtime settings for the loader and discovery scanner
type Config struct {
	// timeout applied to the loader's HTTP client
	HTTPTimeout time.Duration

	// User-Agent header sent with network subtitle requests
	UserAgent string

	// extra directories the discovery scanner searches, besides the
	// conventional ones
	SubtitleDirs []string
}

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "subcue/1.0"
)

// Load reads configuration from the environment, after sourcing an optional
// .env file from the working directory. Unset or invalid values fall back
// to defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPTimeout: defaultHTTPTimeout,
		UserAgent:   defaultUserAgent,
	}

	if v := os.Getenv("SUBCUE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("SUBCUE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("SUBCUE_SUBTITLE_DIRS"); v != "" {
		for _, dir := range strings.Split(v, ",") {
			dir = strings.TrimSpace(dir)
			if dir != "" {
				cfg.SubtitleDirs = append(cfg.SubtitleDirs, dir)
			}
		}
	}
	return cfg
}
