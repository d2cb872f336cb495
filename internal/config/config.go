package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the location backend
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// ThresholdMeters is the minimum great-circle separation from the last
	// entry of the day before a new entry is recorded
	ThresholdMeters float64

	// TimeZone is the calendar used for day bucketing, an IANA name or
	// "Local". Writer and viewer share it.
	TimeZone string

	// Fix ingest rate limiting, per client IP
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from the environment, with an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", ":8080")
	v.SetDefault("db_path", "./data/locations.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("dedup_threshold_m", 3000.0)
	v.SetDefault("time_zone", "Local")
	v.SetDefault("rate_limit", 60)
	v.SetDefault("rate_window", time.Minute)
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db_path"),
		JWTSecret:       v.GetString("jwt_secret"),
		ThresholdMeters: v.GetFloat64("dedup_threshold_m"),
		TimeZone:        v.GetString("time_zone"),
		RateLimit:       v.GetInt("rate_limit"),
		RateWindow:      v.GetDuration("rate_window"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ThresholdMeters < 0 {
		return nil, fmt.Errorf("DEDUP_THRESHOLD_M must be non-negative, got %v", cfg.ThresholdMeters)
	}

	return cfg, nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
