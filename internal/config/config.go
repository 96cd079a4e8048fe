package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cart     CartConfig
	Shipping ShippingConfig
	WhatsApp WhatsAppConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// CartConfig controls the session cart store.
type CartConfig struct {
	SessionSecret string // signs the cart session cookie
	TTLDays       int    // guest cart retention
	ShippingURL   string // shipping quote endpoint consumed by the cart engine
}

// ShippingConfig carries the default shipping rule. These are business
// constants but must stay configurable per deployment.
type ShippingConfig struct {
	DefaultCost     decimal.Decimal // flat rate when no rule matches
	FreeShippingMin decimal.Decimal // subtotal above which shipping is waived
	DefaultDays     int
	FreeDays        int
	DefaultZone     string
}

type WhatsAppConfig struct {
	Phone     string // store phone in international format, no plus sign
	StoreName string
}

type WorkerConfig struct {
	Concurrency      int
	CartCleanupCron  string
	CartCleanupBatch int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Tus Aguacates API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "aguacates"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cart: CartConfig{
			SessionSecret: getEnv("CART_SESSION_SECRET", "change-me-in-production"),
			TTLDays:       getEnvInt("CART_TTL_DAYS", 30),
			ShippingURL:   getEnv("CART_SHIPPING_URL", "http://localhost:8080/api/v1/shipping/calculate"),
		},
		Shipping: ShippingConfig{
			DefaultCost:     getEnvDecimal("SHIPPING_DEFAULT_COST", decimal.NewFromInt(7400)),
			FreeShippingMin: getEnvDecimal("SHIPPING_FREE_MIN", decimal.NewFromInt(68900)),
			DefaultDays:     getEnvInt("SHIPPING_DEFAULT_DAYS", 1),
			FreeDays:        getEnvInt("SHIPPING_FREE_DAYS", 2),
			DefaultZone:     getEnv("SHIPPING_DEFAULT_ZONE", "Bogotá"),
		},
		WhatsApp: WhatsAppConfig{
			Phone:     getEnv("WHATSAPP_PHONE", "573001234567"),
			StoreName: getEnv("WHATSAPP_STORE_NAME", "Tus Aguacates"),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvInt("WORKER_CONCURRENCY", 10),
			CartCleanupCron:  getEnv("WORKER_CART_CLEANUP_CRON", "0 4 * * *"),
			CartCleanupBatch: getEnvInt("WORKER_CART_CLEANUP_BATCH", 500),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Shipping.DefaultCost.IsNegative() {
		return fmt.Errorf("SHIPPING_DEFAULT_COST must be >= 0")
	}
	if c.Shipping.FreeShippingMin.IsNegative() {
		return fmt.Errorf("SHIPPING_FREE_MIN must be >= 0")
	}
	if c.Shipping.DefaultDays <= 0 {
		return fmt.Errorf("SHIPPING_DEFAULT_DAYS must be > 0")
	}
	if c.Cart.TTLDays <= 0 {
		return fmt.Errorf("CART_TTL_DAYS must be > 0")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
