package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from .env and the environment.
type Config struct {
	Addr           string
	TLSCert        string
	TLSKey         string
	DatabaseURL    string
	TokenKey       string
	MaterialsFile  string
	RateLimitRPS   float64
	RateLimitBurst int
	Debug          bool
}

// AuthEnabled reports whether the tool routes sit behind a login.
func (c Config) AuthEnabled() bool {
	return c.TokenKey != ""
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads envFile (if present) into the process environment without
// overriding variables already set, then builds a Config.
func Load(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Addr:          getEnv("ADDR", ":8080"),
		TLSCert:       os.Getenv("TLS_CERT"),
		TLSKey:        os.Getenv("TLS_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		TokenKey:      os.Getenv("TOKEN_KEY"),
		MaterialsFile: os.Getenv("MATERIALS_FILE"),
	}

	var err error
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 3); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = getBool("DEBUG", false); err != nil {
		return Config{}, err
	}

	if cfg.AuthEnabled() && cfg.DatabaseURL == "" {
		return Config{}, errors.New("TOKEN_KEY is set but DATABASE_URL is empty")
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: expected a positive number, got %q", key, v)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", key, v)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
