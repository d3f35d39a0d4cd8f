package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

// Config is shared by the relay and the console binaries; each reads the part it needs.
type Config struct {
	LogLevel slog.Level

	// Relay HTTP surface
	HTTPPort          string
	WebhookSecret     string
	OutboundTimeout   time.Duration
	ShutdownTimeout   time.Duration
	StorefrontTTL     time.Duration
	LedgerRetention   time.Duration
	LedgerPruneSpec   string
	TrackingInterval  time.Duration
	LocationStepDeg   float64
	LocationStepEvery time.Duration

	// Ledger database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Storefront cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// WooCommerce storefront
	WooCommerceURL            string
	WooCommerceConsumerKey    string
	WooCommerceConsumerSecret string

	// MedEx backend
	MedexAPIURL    string
	MedexWooSecret string
}

// DSN is the postgres connection string for the ledger.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

var defaults = map[string]any{
	"LOG_LEVEL":                  "info",
	"HTTP_PORT":                  "8082",
	"OUTBOUND_TIMEOUT":           10 * time.Second,
	"SHUTDOWN_TIMEOUT":           15 * time.Second,
	"STOREFRONT_CACHE_TTL":       15 * time.Minute,
	"SYNC_LEDGER_RETENTION":      30 * 24 * time.Hour,
	"SYNC_LEDGER_PRUNE_SCHEDULE": "@daily",
	"TRACKING_INTERVAL":          10 * time.Second,
	"LOCATION_STEP_DEGREES":      0.0005,
	"LOCATION_STEP_INTERVAL":     5 * time.Second,
	"DB_HOST":                    "localhost",
	"DB_PORT":                    "5432",
	"DB_USER":                    "postgres",
	"DB_NAME":                    "medex_relay",
	"DB_SSLMODE":                 "disable",
	"REDIS_DB":                   0,
	"MEDEX_API_URL":              "http://localhost:8000",
}

var loadDotEnvOnce sync.Once

// LoadConfig reads .env when present, then the process environment, then defaults.
func LoadConfig() Config {
	loadDotEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Error loading .env file: %v", err)
		}
	})

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return Config{
		LogLevel:          logLevel(v.GetString("LOG_LEVEL")),
		HTTPPort:          v.GetString("HTTP_PORT"),
		WebhookSecret:     v.GetString("WOOCOMMERCE_WEBHOOK_SECRET"),
		OutboundTimeout:   v.GetDuration("OUTBOUND_TIMEOUT"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		StorefrontTTL:     v.GetDuration("STOREFRONT_CACHE_TTL"),
		LedgerRetention:   v.GetDuration("SYNC_LEDGER_RETENTION"),
		LedgerPruneSpec:   v.GetString("SYNC_LEDGER_PRUNE_SCHEDULE"),
		TrackingInterval:  v.GetDuration("TRACKING_INTERVAL"),
		LocationStepDeg:   v.GetFloat64("LOCATION_STEP_DEGREES"),
		LocationStepEvery: v.GetDuration("LOCATION_STEP_INTERVAL"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		WooCommerceURL:            v.GetString("WOOCOMMERCE_URL"),
		WooCommerceConsumerKey:    v.GetString("WOOCOMMERCE_CONSUMER_KEY"),
		WooCommerceConsumerSecret: v.GetString("WOOCOMMERCE_CONSUMER_SECRET"),

		MedexAPIURL:    v.GetString("MEDEX_API_URL"),
		MedexWooSecret: v.GetString("MEDEX_WOOCOMMERCE_SECRET"),
	}
}

func logLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger is the JSON logger every binary writes to stderr.
func NewLogger(c Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
