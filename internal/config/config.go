// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port       string `mapstructure:"PORT"`
	Env        string `mapstructure:"APP_ENV"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	RedisURL   string `mapstructure:"REDIS_URL"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// Opaque session tokens expire after this sliding window.
	SessionTTLHours int `mapstructure:"SESSION_TTL_HOURS"`

	// Upload storage for feed media, served under /uploads.
	UploadDir         string `mapstructure:"UPLOAD_DIR"`
	UploadMaxSizeMB   int    `mapstructure:"UPLOAD_MAX_SIZE_MB"`
	UploadImageMaxDim int    `mapstructure:"UPLOAD_IMAGE_MAX_DIM"`

	// Default plan prices in centavos; overridable per-field via settings.
	PrecoMensal  int `mapstructure:"PRECO_MENSAL"`
	Preco3Meses  int `mapstructure:"PRECO_3M"`
	Preco6Meses  int `mapstructure:"PRECO_6M"`
	Preco12Meses int `mapstructure:"PRECO_12M"`

	// Payment provider. "simulado" synthesizes checkout URLs locally;
	// "bestfy" delegates to the remote API.
	PixProvider   string `mapstructure:"PIX_PROVIDER"`
	BestfyBaseURL string `mapstructure:"BESTFY_BASE_URL"`
	CheckoutHost  string `mapstructure:"CHECKOUT_HOST"`

	// AI completion provider for assisted support replies.
	IABaseURL   string `mapstructure:"IA_BASE_URL"`
	IAModel     string `mapstructure:"IA_MODEL"`
	IAMaxTokens int    `mapstructure:"IA_MAX_TOKENS"`

	// Runtime feature toggles, e.g. "chat_ia=on,pix_bestfy=off".
	FeatureFlags string `mapstructure:"FEATURE_FLAGS"`

	// Development bootstrap: create a root admin account on startup.
	DevBootstrapRoot bool   `mapstructure:"DEV_BOOTSTRAP_ROOT"`
	DevRootEmail     string `mapstructure:"DEV_ROOT_EMAIL"`
	DevRootLogin     string `mapstructure:"DEV_ROOT_LOGIN"`
	DevRootPassword  string `mapstructure:"DEV_ROOT_PASSWORD"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// SessionTTL returns the configured session expiry as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			log.Printf("No profile-specific config 'config.%s.yml' found, using base config", env)
		}
	}

	// Set default values for development
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "vitrine")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("SESSION_TTL_HOURS", 720)
	viper.SetDefault("UPLOAD_DIR", "/tmp/vitrine/uploads")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 50)
	viper.SetDefault("UPLOAD_IMAGE_MAX_DIM", 1080)
	viper.SetDefault("PRECO_MENSAL", 2990)
	viper.SetDefault("PRECO_3M", 6990)
	viper.SetDefault("PRECO_6M", 11990)
	viper.SetDefault("PRECO_12M", 19990)
	viper.SetDefault("PIX_PROVIDER", "simulado")
	viper.SetDefault("BESTFY_BASE_URL", "https://api.bestfy.com/v1")
	viper.SetDefault("CHECKOUT_HOST", "http://localhost:3000")
	viper.SetDefault("IA_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("IA_MODEL", "gpt-4o-mini")
	viper.SetDefault("IA_MAX_TOKENS", 300)
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("DEV_BOOTSTRAP_ROOT", false)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SessionTTLHours <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	if c.PixProvider != "simulado" && c.PixProvider != "bestfy" {
		return fmt.Errorf("PIX_PROVIDER must be 'simulado' or 'bestfy', got %q", c.PixProvider)
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	if isProduction {
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
