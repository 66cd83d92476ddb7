// Package config loads service settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string  `yaml:"addr"`
	Area        float64 `yaml:"area"`
	Lang        string  `yaml:"lang"`
	Debug       bool    `yaml:"debug"`
	TLSCert     string  `yaml:"tls_cert"`
	TLSKey      string  `yaml:"tls_key"`
	TokenKey    string  `yaml:"-"`
	DatabaseURL string  `yaml:"-"`
	RateLimit   float64 `yaml:"rate_limit"`
	RateBurst   int     `yaml:"rate_burst"`
	StaticDir   string  `yaml:"static_dir"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		Area:      1.0,
		Lang:      "en",
		RateLimit: 5,
		RateBurst: 10,
		StaticDir: "./static",
	}
}

// Load reads path when it is not empty. A missing .env is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CLARIFIER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CLARIFIER_LANG"); v != "" {
		c.Lang = v
	}
	if v := os.Getenv("CLARIFIER_TLS_CERT"); v != "" {
		c.TLSCert = v
	}
	if v := os.Getenv("CLARIFIER_TLS_KEY"); v != "" {
		c.TLSKey = v
	}
	if v := os.Getenv("CLARIFIER_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("TOKEN_KEY"); v != "" {
		c.TokenKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("CLARIFIER_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLARIFIER_DEBUG: %w", err)
		}
		c.Debug = b
	}
	if v := os.Getenv("CLARIFIER_AREA"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("CLARIFIER_AREA: %w", err)
		}
		c.Area = f
	}
	if v := os.Getenv("CLARIFIER_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CLARIFIER_RATE: %w", err)
		}
		c.RateLimit = f
	}
	if v := os.Getenv("CLARIFIER_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CLARIFIER_BURST: %w", err)
		}
		c.RateBurst = n
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case !(c.Area > 0):
		return fmt.Errorf("area must be > 0, got %v", c.Area)
	case c.Addr == "":
		return errors.New("addr is empty")
	case c.RateLimit <= 0:
		return fmt.Errorf("rate_limit must be > 0, got %v", c.RateLimit)
	case c.RateBurst <= 0:
		return fmt.Errorf("rate_burst must be > 0, got %d", c.RateBurst)
	case (c.TLSCert == "") != (c.TLSKey == ""):
		return errors.New("tls_cert and tls_key must be set together")
	}
	return nil
}

// TLS reports whether the server should listen with TLS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
