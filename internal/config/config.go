// Package config reads process configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AppName = "Ramadan Tracker"
	AppID   = "ramadan-tracker"
)

// Version is injected via -ldflags.
var Version = "dev"

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend (must be file, memory, redis, or postgres)")
	ErrInvalidPort    = errors.New("port must be a number between 1 and 65535")
	ErrInvalidLevel   = errors.New("log level must be debug, info, warn, or error")
)

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Table    string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name)
}

type Config struct {
	BindAddr string
	Port     string
	Backend  string
	DataDir  string
	LogLevel slog.Level
	GinMode  string
	Redis    RedisConfig
	Postgres PostgresConfig
}

func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// Load reads envFile when it exists, then the environment. Variables already
// set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s failed: %w", envFile, err)
		}
	}

	cfg := &Config{
		BindAddr: getEnv("BIND_ADDR", "127.0.0.1"),
		Port:     getEnv("PORT", "8080"),
		Backend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:  os.Getenv("DATA_DIR"),
		GinMode:  getEnv("GIN_MODE", "release"),
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", AppID),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tracker"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "tracker"),
			Table:    getEnv("KV_TABLE", "kv_entries"),
		},
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: %w: %q", ErrInvalidPort, cfg.Port)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("config: invalid REDIS_DB: %q", os.Getenv("REDIS_DB"))
	}
	cfg.Redis.DB = redisDB

	switch cfg.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("config: %w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if cfg.Backend == BackendFile && cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: could not determine user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(dir, AppID)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
