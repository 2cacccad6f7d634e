package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Pricing     PricingConfig     `mapstructure:"pricing"`
	Collections CollectionsConfig `mapstructure:"collections"`
	Health      HealthConfig      `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"DATABASE_HOST"`
	Port         string `mapstructure:"DATABASE_PORT"`
	Name         string `mapstructure:"DATABASE_NAME"`
	User         string `mapstructure:"DATABASE_USER"`
	Password     string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode      string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PlanTTL  string `mapstructure:"REDIS_PLAN_TTL"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
	DPDRoll  string `mapstructure:"SCHEDULER_DPD_ROLL_SPEC"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// PricingConfig carries the presentation parameters of the payment-plan
// engine. The smaller-loan fee discount is deliberately configuration: the
// business rule behind it is still an open product question.
type PricingConfig struct {
	BandCount              int    `mapstructure:"PRICING_BAND_COUNT"`
	SmallerLoanFeeDiscount string `mapstructure:"PRICING_SMALLER_LOAN_FEE_DISCOUNT"`
	WeeklyInstalmentDays   int    `mapstructure:"PRICING_WEEKLY_INSTALMENT_DAYS"`
}

// CollectionsConfig carries the default feature toggles of the collections
// classifier. Per-request feature configuration overrides these.
type CollectionsConfig struct {
	WriteOffDPD           int  `mapstructure:"COLLECTIONS_WRITE_OFF_DPD"`
	EarlyWriteOffEnabled  bool `mapstructure:"COLLECTIONS_EARLY_WRITE_OFF_ENABLED"`
	WriteOff180DPDEnabled bool `mapstructure:"COLLECTIONS_180_DPD_WRITE_OFF_ENABLED"`
	RepaymentCapEnabled   bool `mapstructure:"COLLECTIONS_REPAYMENT_CAP_ENABLED"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "loan_pricing")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PLAN_TTL", "24h")
	viper.SetDefault("PRICING_BAND_COUNT", 6)
	viper.SetDefault("PRICING_SMALLER_LOAN_FEE_DISCOUNT", "5000")
	viper.SetDefault("PRICING_WEEKLY_INSTALMENT_DAYS", 7)
	viper.SetDefault("COLLECTIONS_WRITE_OFF_DPD", 180)
	viper.SetDefault("COLLECTIONS_EARLY_WRITE_OFF_ENABLED", false)
	viper.SetDefault("COLLECTIONS_180_DPD_WRITE_OFF_ENABLED", false)
	viper.SetDefault("COLLECTIONS_REPAYMENT_CAP_ENABLED", false)
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("SCHEDULER_DPD_ROLL_SPEC", "0 0 1 * * *")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Pricing.BandCount <= 0 {
		return fmt.Errorf("PRICING_BAND_COUNT must be greater than 0")
	}

	if c.Collections.WriteOffDPD <= 0 {
		return fmt.Errorf("COLLECTIONS_WRITE_OFF_DPD must be greater than 0")
	}

	if _, err := decimal.NewFromString(c.Pricing.SmallerLoanFeeDiscount); err != nil {
		return fmt.Errorf("PRICING_SMALLER_LOAN_FEE_DISCOUNT must be a valid decimal: %w", err)
	}

	if _, err := time.ParseDuration(c.Redis.PlanTTL); err != nil {
		return fmt.Errorf("REDIS_PLAN_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// DSN builds the Postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetSmallerLoanFeeDiscount returns the variation-mode first-band fee
// discount as decimal.
func (c *Config) GetSmallerLoanFeeDiscount() decimal.Decimal {
	discount, _ := decimal.NewFromString(c.Pricing.SmallerLoanFeeDiscount)
	return discount
}

// GetPlanTTL returns the payment-plan cache expiry as duration.
func (c *Config) GetPlanTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.PlanTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
