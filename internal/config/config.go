package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = 3000
	DefaultAllowedOrigins = "http://localhost:5173"
	DefaultAIDelay        = 500 * time.Millisecond
	DefaultLogLevel       = "info"
)

type Config struct {
	Port           int
	AllowedOrigins string
	AIDelay        time.Duration
	LogLevel       string
}

func Default() Config {
	return Config{
		Port:           DefaultPort,
		AllowedOrigins: DefaultAllowedOrigins,
		AIDelay:        DefaultAIDelay,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads the given .env files (".env" when none are named), then lets the process
// environment override them. A missing file is not an error.
func Load(filenames ...string) (Config, error) {
	env, err := godotenv.Read(filenames...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		env = map[string]string{}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		cfg.AllowedOrigins = v
	}
	if v, ok := lookup("AI_DELAY_MS"); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("invalid AI_DELAY_MS %q", v)
		}
		cfg.AIDelay = time.Duration(ms) * time.Millisecond
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}
