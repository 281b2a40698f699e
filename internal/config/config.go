// Package config loads runtime configuration from a .env file and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerIP       = "0.0.0.0"
	defaultServerPort     = "8080"
	defaultDataDirectory  = "./data"
	defaultChangelogDir   = "./changelog"
	defaultDatabaseURL    = "socialhub.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultTokenTTL       = "17520h"
	defaultCookieSecure   = "false"
	defaultCookieSameSite = "Lax"
	defaultLogLevel       = "info"

	defaultMediaMaxFiles  = 100
	defaultStoryMaxFiles  = 5
	defaultUploadMaxBytes = 100_000_000
	defaultAvatarMaxBytes = 30_000_000
)

type Config struct {
	AppEnv string
	Debug  bool

	ServerIP   string
	ServerPort string

	DataDirectory      string
	ChangelogDirectory string
	DatabaseURL        string

	JWTSecret      string
	TokenTTL       time.Duration
	CookieSecure   bool
	CookieSameSite string

	MediaMaxFiles  int
	StoryMaxFiles  int
	UploadMaxBytes int64
	AvatarMaxBytes int64

	LogLevel slog.Level
}

// Load reads .env when present, then the environment, and validates the
// result.
func Load() (*Config, error) {
	LoadDotEnv()
	return FromEnv()
}

// LoadDotEnv copies variables from ./.env into the environment. Variables
// already set are kept.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading from environment")
	}
}

// DataDirectoryFromEnv resolves DATADIRECTORY alone, for tools that only
// touch the media store and need no server settings.
func DataDirectoryFromEnv() string {
	return filepath.Clean(strings.TrimSpace(getEnv("DATADIRECTORY", defaultDataDirectory)))
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(getEnv("APP_ENV", "dev"))
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.Debug = parseBoolEnv("DEBUG", "false")

	cfg.ServerIP = strings.TrimSpace(getEnv("SERVERIP", defaultServerIP))
	cfg.ServerPort = strings.TrimSpace(getEnv("SERVERPORT", defaultServerPort))
	cfg.DataDirectory = DataDirectoryFromEnv()
	cfg.ChangelogDirectory = filepath.Clean(strings.TrimSpace(getEnv("CHANGELOG_DIRECTORY", defaultChangelogDir)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))

	var err error
	cfg.TokenTTL, err = parseDurationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return nil, err
	}

	if cfg.MediaMaxFiles, err = parseIntEnv("MEDIA_MAX_FILES", defaultMediaMaxFiles); err != nil {
		return nil, err
	}
	if cfg.StoryMaxFiles, err = parseIntEnv("STORY_MAX_FILES", defaultStoryMaxFiles); err != nil {
		return nil, err
	}
	if cfg.UploadMaxBytes, err = parseInt64Env("UPLOAD_MAX_BYTES", defaultUploadMaxBytes); err != nil {
		return nil, err
	}
	if cfg.AvatarMaxBytes, err = parseInt64Env("AVATAR_MAX_BYTES", defaultAvatarMaxBytes); err != nil {
		return nil, err
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerIP, c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("SERVERPORT must not be empty")
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("SERVERPORT must be a port number, got %q", cfg.ServerPort)
	}
	if cfg.DataDirectory == "" || cfg.DataDirectory == "." {
		return fmt.Errorf("DATADIRECTORY must name a directory")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be > 0")
	}
	if cfg.MediaMaxFiles <= 0 || cfg.StoryMaxFiles <= 0 {
		return fmt.Errorf("MEDIA_MAX_FILES and STORY_MAX_FILES must be > 0")
	}
	if cfg.UploadMaxBytes <= 0 || cfg.AvatarMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES and AVATAR_MAX_BYTES must be > 0")
	}

	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Debug {
			return fmt.Errorf("DEBUG must be off in prod/release")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(getEnv(name, strconv.Itoa(fallback)))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseInt64Env(name string, fallback int64) (int64, error) {
	value := strings.TrimSpace(getEnv(name, strconv.FormatInt(fallback, 10)))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q, expected debug, info, warn or error", level)
	}
}
