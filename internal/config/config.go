package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string        `yaml:"port"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	LogLevel       slog.Level    `yaml:"-"`
	SourceURL      string        `yaml:"source_url"`
	SinkURL        string        `yaml:"sink_url"`
	SinkSecret     string        `yaml:"sink_secret"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	DatasetTTL     time.Duration `yaml:"dataset_ttl"`
	MaxDatasets    int           `yaml:"max_datasets"`
	CookieSecure   bool          `yaml:"cookie_secure"`
}

func Defaults() Config {
	return Config{
		Port:           "8080",
		HTTPTimeout:    15 * time.Second,
		LogLevel:       slog.LevelInfo,
		MaxUploadBytes: 50 << 20,
		DatasetTTL:     time.Hour,
		MaxDatasets:    100,
	}
}

// defaults -> YAML de CONFIG_FILE (opcional) -> variables de entorno
func FromEnv() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fc struct {
		Config   `yaml:",inline"`
		LogLevel string `yaml:"log_level"`
	}
	fc.Config = cfg
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg = fc.Config
	if fc.LogLevel == "debug" {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.LogLevel = slog.LevelDebug
	}
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.SourceURL = envOr("SOURCE_URL", cfg.SourceURL)
	cfg.SinkURL = envOr("SINK_URL", cfg.SinkURL)
	cfg.SinkSecret = envOr("SINK_SECRET", cfg.SinkSecret)
	if n := atoiEnv("MAX_UPLOAD_MB"); n > 0 {
		cfg.MaxUploadBytes = int64(n) << 20
	}
	if n := atoiEnv("DATASET_TTL_MINUTES"); n > 0 {
		cfg.DatasetTTL = time.Duration(n) * time.Minute
	}
	if n := atoiEnv("MAX_DATASETS"); n > 0 {
		cfg.MaxDatasets = n
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure, _ = strconv.ParseBool(v)
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func atoiEnv(k string) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return 0
	}
	return n
}
