// Package config loads the server settings from .env, an optional config
// file named by NODAL_CONFIG, and the process environment, in rising order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileEnv names the environment variable that points at a config file.
const FileEnv = "NODAL_CONFIG"

type Config struct {
	Addr    string
	TLSCert string
	TLSKey  string

	TokenKey          string
	AdminLogin        string
	AdminPasswordHash string
	SessionTTL        time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
	MaxUploadMB     int64
}

func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func defaults(v *viper.Viper) {
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("ADMIN_LOGIN", "admin")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	v.SetDefault("MAX_UPLOAD_MB", 10)
}

// Load reads the configuration. A missing .env is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path := v.GetString(FileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr:              v.GetString("ADDR"),
		TLSCert:           v.GetString("TLS_CERT"),
		TLSKey:            v.GetString("TLS_KEY"),
		TokenKey:          v.GetString("TOKEN_KEY"),
		AdminLogin:        strings.TrimSpace(v.GetString("ADMIN_LOGIN")),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		MaxUploadMB:       v.GetInt64("MAX_UPLOAD_MB"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.TokenKey == "" {
		return errors.New("config: TOKEN_KEY is not set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("config: TLS_CERT and TLS_KEY must be set together")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("config: rate limit must be positive, got %g rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}
