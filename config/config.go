package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"signature-explorer/openchain"
)

type Config struct {
	APIURL          string
	ListenAddr      string
	DatabasePath    string // empty disables import history
	StatsCacheTTL   time.Duration
	UpstreamTimeout time.Duration // 0 means no client timeout
	ResultLimit     int
	LogLevel        string
	LogFormat       string // json or console
	GinMode         string
}

func Default() Config {
	return Config{
		APIURL:          openchain.DefaultBaseURL,
		ListenAddr:      ":8090",
		DatabasePath:    "signatures.db",
		StatsCacheTTL:   time.Minute,
		UpstreamTimeout: 0,
		ResultLimit:     50,
		LogLevel:        "info",
		LogFormat:       "json",
		GinMode:         "release",
	}
}

// Load reads the given .env files (".env" when none are named; a missing file is
// not an error) and then the process environment on top of the defaults.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("OPENCHAIN_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}

	var err error
	if cfg.StatsCacheTTL, err = durationEnv("STATS_CACHE_TTL", cfg.StatsCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamTimeout, err = durationEnv("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RESULT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("RESULT_LIMIT must be a positive integer, got %q", v)
		}
		cfg.ResultLimit = n
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
