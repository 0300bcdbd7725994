package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"challonge-client/challonge"
	"challonge-client/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "challonge.yaml"

type Config struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	DBPath            string        `yaml:"db_path"`
	ServerPort        string        `yaml:"server_port"`
	LogLevel          string        `yaml:"log_level"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	SyncConcurrency   int           `yaml:"sync_concurrency"`
}

func defaults() Config {
	return Config{
		BaseURL:         challonge.DefaultBaseURL,
		DBPath:          "challonge.db",
		ServerPort:      "8080",
		LogLevel:        "info",
		Timeout:         constants.ExternalAPITimeout,
		SyncConcurrency: constants.SyncConcurrency,
	}
}

// Load reads .env, then the YAML file named by CHALLONGE_CONFIG (if it
// exists), then environment variables. Later sources win.
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := defaults()

	path := getEnv("CHALLONGE_CONFIG", defaultConfigFile)
	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("CHALLONGE_API_KEY is required")
	}
	if cfg.SyncConcurrency < 1 {
		cfg.SyncConcurrency = 1
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Float64("requests_per_second", cfg.RequestsPerSecond).
		Dur("timeout", cfg.Timeout).
		Msg("configuration loaded")

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.APIKey = getEnv("CHALLONGE_API_KEY", cfg.APIKey)
	cfg.BaseURL = getEnv("CHALLONGE_BASE_URL", cfg.BaseURL)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("CHALLONGE_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CHALLONGE_RPS: %w", err)
		}
		cfg.RequestsPerSecond = rps
	}
	if v := os.Getenv("CHALLONGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CHALLONGE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("SYNC_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SYNC_CONCURRENCY: %w", err)
		}
		cfg.SyncConcurrency = n
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
