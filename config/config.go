package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"airbnb-cleaner/models"
)

// DateLayout is the layout of every calendar date the cleaner reads or is configured with.
const DateLayout = "2006-01-02"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath      string `envconfig:"INPUT_PATH" default:"./data/listings.csv" validate:"required"`
	OutputPath     string `envconfig:"OUTPUT_PATH" default:"./output/cleaned_listings.csv" validate:"required,nefield=InputPath"`
	XLSXOutputPath string `envconfig:"XLSX_OUTPUT_PATH"`

	ScrapeCutoff string `envconfig:"SCRAPE_CUTOFF" default:"2023-01-01" validate:"required,datetime=2006-01-02"`

	// The bounds are only read when the fence is pinned; unset bounds stay nil.
	PinPriceFence   bool     `envconfig:"PRICE_FENCE_PIN" default:"false"`
	PriceFenceLower *float64 `envconfig:"PRICE_FENCE_LOWER" validate:"required_if=PinPriceFence true"`
	PriceFenceUpper *float64 `envconfig:"PRICE_FENCE_UPPER" validate:"required_if=PinPriceFence true"`

	TopPredictors     int    `envconfig:"TOP_PREDICTORS" default:"10" validate:"gte=0"`
	RankingOutputPath string `envconfig:"RANKING_OUTPUT_PATH"`

	PostgresEnabled  bool   `envconfig:"POSTGRES_ENABLED" default:"false"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"cleaner"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"cleaner123"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"rental_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxConcurrency int `envconfig:"MAX_CONCURRENCY" default:"3" validate:"gte=1"`
	MaxRetries     int `envconfig:"MAX_RETRIES" default:"3" validate:"gte=1"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
}

// Load reads the .env file, decodes the environment and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv decodes and validates the current environment without touching .env.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterStructValidation(validatePinnedFence, Config{})
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// validatePinnedFence requires a non-empty interval, but only when pinning.
func validatePinnedFence(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if !c.PinPriceFence || c.PriceFenceLower == nil || c.PriceFenceUpper == nil {
		return
	}
	if *c.PriceFenceUpper <= *c.PriceFenceLower {
		sl.ReportError(c.PriceFenceUpper, "PriceFenceUpper", "PriceFenceUpper", "gtfield", "PriceFenceLower")
	}
}

// PinnedFence returns the configured price fence, or nil when the fence is
// fitted from the data.
func (c *Config) PinnedFence() *models.Fence {
	if !c.PinPriceFence || c.PriceFenceLower == nil || c.PriceFenceUpper == nil {
		return nil
	}
	return &models.Fence{Lower: *c.PriceFenceLower, Upper: *c.PriceFenceUpper}
}

// Cutoff returns the parsed scrape cutoff date.
func (c *Config) Cutoff() time.Time {
	t, err := time.Parse(DateLayout, c.ScrapeCutoff)
	if err != nil {
		// Validate guarantees the layout.
		return time.Time{}
	}
	return t
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
