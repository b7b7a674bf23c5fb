package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "hotel.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultRoomLockTTL  = "5s"
	defaultAutoConfirm  = "false"
	defaultTracksStay   = "false"
	defaultMinNights    = "1"
	defaultMaxPartySize = "10"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultCORSOrigins  = "*"
	defaultAuthRate     = "5"
	defaultAuthBurst    = "10"
	defaultShutdownWait = "10s"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	RedisURL        string
	RoomLockTTL     time.Duration
	ShutdownTimeout time.Duration

	// BookingAutoConfirm creates bookings directly as CONFIRMED.
	BookingAutoConfirm bool
	// RoomStatusTracksStay flips the room's inventory status on check-in
	// (OCCUPIED) and check-out (CLEANING).
	RoomStatusTracksStay bool
	MinNights            int
	MaxPartySize         int

	LogLevel  string
	LogFormat string
	LogFile   string

	CORSAllowedOrigins []string
	AuthRateLimit      float64
	AuthRateBurst      int
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.RoomLockTTL, err = parseDurationEnv("ROOM_LOCK_TTL", defaultRoomLockTTL); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownWait); err != nil {
		return nil, err
	}

	cfg.BookingAutoConfirm = parseBoolEnv("BOOKING_AUTO_CONFIRM", defaultAutoConfirm)
	cfg.RoomStatusTracksStay = parseBoolEnv("ROOM_STATUS_TRACKS_STAY", defaultTracksStay)
	if cfg.MinNights, err = parseIntEnv("MIN_NIGHTS", defaultMinNights); err != nil {
		return nil, err
	}
	if cfg.MaxPartySize, err = parseIntEnv("MAX_PARTY_SIZE", defaultMaxPartySize); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins))
	rate, err := strconv.ParseFloat(strings.TrimSpace(getEnv("AUTH_RATE_LIMIT", defaultAuthRate)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT value: %w", err)
	}
	cfg.AuthRateLimit = rate
	if cfg.AuthRateBurst, err = parseIntEnv("AUTH_RATE_BURST", defaultAuthBurst); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RoomLockTTL <= 0 {
		return fmt.Errorf("ROOM_LOCK_TTL must be > 0")
	}
	if cfg.MinNights < 1 {
		return fmt.Errorf("MIN_NIGHTS must be >= 1")
	}
	if cfg.MaxPartySize < 1 {
		return fmt.Errorf("MAX_PARTY_SIZE must be >= 1")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}
	if cfg.AuthRateLimit <= 0 || cfg.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be > 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
