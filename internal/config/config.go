package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Momo     MomoConfig
	Payment  PaymentConfig
	SMTP     SMTPConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MomoConfig holds MTN Mobile Money collection API configuration.
type MomoConfig struct {
	BaseURL           string
	APIUser           string
	APIKey            string
	SubscriptionKey   string
	TargetEnvironment string
	// Currency is fixed per environment; the sandbox only accepts EUR.
	Currency     string
	PayerMessage string
	PayeeNote    string
	HTTPTimeout  time.Duration
}

// PaymentConfig holds payment polling and settlement configuration.
type PaymentConfig struct {
	PollInterval    time.Duration
	PollMaxAttempts int
	// DedupWindow is the lookback used to suppress re-settling a request
	// that already received a paid record from the same checkout.
	DedupWindow time.Duration
	AdminEmail  string
}

// SMTPConfig holds outbound email configuration.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "waste_collection"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Momo: MomoConfig{
			BaseURL:           getEnv("MOMO_BASE_URL", "https://sandbox.momodeveloper.mtn.com"),
			APIUser:           getEnv("MOMO_API_USER", ""),
			APIKey:            getEnv("MOMO_API_KEY", ""),
			SubscriptionKey:   getEnv("MOMO_SUBSCRIPTION_KEY", ""),
			TargetEnvironment: getEnv("MOMO_TARGET_ENVIRONMENT", "sandbox"),
			Currency:          getEnv("MOMO_CURRENCY", "EUR"),
			PayerMessage:      getEnv("MOMO_PAYER_MESSAGE", "Payment for waste collection service"),
			PayeeNote:         getEnv("MOMO_PAYEE_NOTE", "Waste collection payment"),
			HTTPTimeout:       getDurationEnv("MOMO_HTTP_TIMEOUT", 15*time.Second),
		},
		Payment: PaymentConfig{
			PollInterval:    getDurationEnv("PAYMENT_POLL_INTERVAL", 3*time.Second),
			PollMaxAttempts: getIntEnv("PAYMENT_POLL_MAX_ATTEMPTS", 10),
			DedupWindow:     getDurationEnv("PAYMENT_DEDUP_WINDOW", 5*time.Minute),
			AdminEmail:      getEnv("PAYMENT_ADMIN_EMAIL", "operations@wastecollect.example"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@wastecollect.example"),
			Enabled:  getBoolEnv("SMTP_ENABLED", false),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "waste-collection-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
