package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/spf13/viper"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/logger"
)

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultBrandVoice = "Friendly, concise, and human. No hype. Offer help if the review is negative."
	DefaultTimeout    = 20 * time.Second
)

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig
	Database   DBConfig
	Logging    logger.Config
	Generation core.GenerationConfig
	Batch      BatchConfig
	Actor      core.Actor

	// VoiceConfigPath points at an optional YAML file with brand voice,
	// negative keywords and fallback templates.
	VoiceConfigPath string
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port string
	// AdminToken, when set, must be presented as a bearer token on API calls.
	AdminToken string
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// BatchConfig controls the unattended batch run.
type BatchConfig struct {
	Limit int
	// Schedule is a cron expression; empty disables scheduled runs.
	Schedule string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("OPENAI_MODEL", DefaultModel)
	viper.SetDefault("OPENAI_BASE_URL", DefaultBaseURL)
	viper.SetDefault("GENERATION_TIMEOUT", DefaultTimeout.String())
	viper.SetDefault("BRAND_VOICE", DefaultBrandVoice)
	viper.SetDefault("BATCH_LIMIT", core.MaxBatchSize)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "reply_warden")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("REPLY_AUTHOR_NAME", "Store Team")

	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       viper.GetString("SERVER_PORT"),
			AdminToken: viper.GetString("ADMIN_TOKEN"),
		},
		Database: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Logging: logger.Config{
			Level:    strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format:   viper.GetString("LOG_FORMAT"),
			Output:   viper.GetString("LOG_OUTPUT"),
			FilePath: viper.GetString("LOG_FILE_PATH"),
		},
		Generation: core.GenerationConfig{
			APIKey:     strings.TrimSpace(viper.GetString("OPENAI_API_KEY")),
			Model:      strings.TrimSpace(viper.GetString("OPENAI_MODEL")),
			BrandVoice: viper.GetString("BRAND_VOICE"),
			BaseURL:    strings.TrimSpace(viper.GetString("OPENAI_BASE_URL")),
			Timeout:    viper.GetDuration("GENERATION_TIMEOUT"),
		},
		Batch: BatchConfig{
			Limit:    viper.GetInt("BATCH_LIMIT"),
			Schedule: strings.TrimSpace(viper.GetString("BATCH_SCHEDULE")),
		},
		Actor: core.Actor{
			UserID:      viper.GetInt64("REPLY_AUTHOR_ID"),
			DisplayName: viper.GetString("REPLY_AUTHOR_NAME"),
			Email:       viper.GetString("REPLY_AUTHOR_EMAIL"),
		},
		VoiceConfigPath: viper.GetString("VOICE_CONFIG_PATH"),
	}

	if cfg.Generation.Model == "" {
		cfg.Generation.Model = DefaultModel
	}
	cfg.Batch.Limit = clampBatchLimit(cfg.Batch.Limit)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, fmt.Errorf("DB_HOST must be set"))
	}
	if c.Generation.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", c.Generation.Timeout))
	}
	if c.Batch.Schedule != "" && !gronx.New().IsValid(c.Batch.Schedule) {
		errs = append(errs, fmt.Errorf("BATCH_SCHEDULE is not a valid cron expression: %q", c.Batch.Schedule))
	}
	return errors.Join(errs...)
}

func clampBatchLimit(n int) int {
	if n <= 0 || n > core.MaxBatchSize {
		return core.MaxBatchSize
	}
	return n
}
