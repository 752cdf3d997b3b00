package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Sweep        SweepConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string

	// BusinessUTCOffset is the fixed offset (in hours from UTC) of the
	// business timezone all schedule arithmetic runs in. The legacy system
	// hard-coded -3; it is configuration here but defaults to the same value.
	BusinessUTCOffset int
}

// SweepConfig tunes the stale clock-session sweeper.
type SweepConfig struct {
	Interval    time.Duration
	TickTimeout time.Duration
	Grace       time.Duration
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "vigilo"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	businessOffset, err := strconv.Atoi(getEnv("BUSINESS_UTC_OFFSET", "-3"))
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_UTC_OFFSET: %w", err)
	}

	config.App = AppConfig{
		Port:              appPort,
		Env:               getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		BusinessUTCOffset: businessOffset,
	}

	// Sweeper configuration
	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	sweepTimeout, err := time.ParseDuration(getEnv("SWEEP_TICK_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_TICK_TIMEOUT: %w", err)
	}
	sweepGrace, err := time.ParseDuration(getEnv("SWEEP_GRACE", "3h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_GRACE: %w", err)
	}

	config.Sweep = SweepConfig{
		Interval:    sweepInterval,
		TickTimeout: sweepTimeout,
		Grace:       sweepGrace,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.BusinessUTCOffset < -12 || c.App.BusinessUTCOffset > 14 {
		return fmt.Errorf("BUSINESS_UTC_OFFSET out of range")
	}
	return nil
}

// BusinessLocation returns the fixed-offset location schedule arithmetic uses.
func (c *Config) BusinessLocation() *time.Location {
	name := fmt.Sprintf("UTC%+d", c.App.BusinessUTCOffset)
	return time.FixedZone(name, c.App.BusinessUTCOffset*3600)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
