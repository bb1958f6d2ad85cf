package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the dashboard server.
type Config struct {
	APIKey            string
	BaseURL           string // empty means the public OpenWeatherMap endpoint
	Port              int
	DBPath            string
	DatabaseURL       string
	RequestsPerSecond float64
	Burst             int
	HTTPTimeout       time.Duration
	SessionIdle       time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:              8080,
		DBPath:            "wthr.db",
		RequestsPerSecond: 1,
		Burst:             5,
		HTTPTimeout:       10 * time.Second,
		SessionIdle:       24 * time.Hour,
	}

	cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.APIKey == "" {
		return cfg, errors.New("OPENWEATHER_API_KEY is required")
	}

	if base := os.Getenv("OPENWEATHER_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if rpsStr := os.Getenv("OPENWEATHER_RPS"); rpsStr != "" {
		rps, err := strconv.ParseFloat(rpsStr, 64)
		if err != nil || rps <= 0 {
			return cfg, fmt.Errorf("invalid OPENWEATHER_RPS: %s", rpsStr)
		}
		cfg.RequestsPerSecond = rps
	}

	if burstStr := os.Getenv("OPENWEATHER_BURST"); burstStr != "" {
		burst, err := strconv.Atoi(burstStr)
		if err != nil || burst <= 0 {
			return cfg, fmt.Errorf("invalid OPENWEATHER_BURST: %s", burstStr)
		}
		cfg.Burst = burst
	}

	if timeoutStr := os.Getenv("HTTP_TIMEOUT"); timeoutStr != "" {
		d, err := time.ParseDuration(timeoutStr)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid HTTP_TIMEOUT: %s", timeoutStr)
		}
		cfg.HTTPTimeout = d
	}

	if idleStr := os.Getenv("SESSION_IDLE"); idleStr != "" {
		d, err := time.ParseDuration(idleStr)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid SESSION_IDLE: %s", idleStr)
		}
		cfg.SessionIdle = d
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
