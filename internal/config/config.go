package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration, read via viper from the
// environment with an optional .env file.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	Seed      SeedConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env  string // development, production
	Name string
}

type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig locates the embedded SQLite database file.
type DBConfig struct {
	Path string
}

// SeedConfig points at an optional CSV file loaded once at startup when the
// inventory table is empty. Empty path disables seeding.
type SeedConfig struct {
	Path string
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Load reads configuration from environment variables, falling back to an
// optional .env file in the working directory. Env vars win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "delelager")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("DB_PATH", "db/inventory.db")
	v.SetDefault("SEED_CSV", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_PER_SECOND", 50.0)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Path: v.GetString("DB_PATH"),
		},
		Seed: SeedConfig{
			Path: v.GetString("SEED_CSV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		RateLimit: RateLimitConfig{
			PerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
			Burst:     v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if cfg.DB.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	return cfg, nil
}
