package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Ledger    LedgerConfig
	Bill      BillConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	LogLevel string
}

type StoreConfig struct {
	Driver    string
	Namespace string // document key, ledger_v1 unless overridden
	FilePath  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LedgerConfig struct {
	Locale string // BCP 47 tag used to collate customer names
}

type BillConfig struct {
	CurrencySymbol     string
	WhatsAppBaseURL    string
	DefaultCountryCode string
	SellerName         string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORS is the policy for a local frontend dev server.
var DefaultCORS = CORSConfig{
	AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	AllowedHeaders: []string{"Accept", "Content-Type", "Origin", "X-Request-ID"},
}

// WithDefaults fills empty lists from DefaultCORS.
func (c CORSConfig) WithDefaults() CORSConfig {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = DefaultCORS.AllowedOrigins
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = DefaultCORS.AllowedMethods
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = DefaultCORS.AllowedHeaders
	}
	return c
}

type RateLimitConfig struct {
	Requests int
	Duration int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables", "error", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "milk-ledger")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreFile)
	v.SetDefault("STORE_NAMESPACE", "ledger_v1")
	v.SetDefault("STORE_FILE_PATH", "./data/ledger_v1.json")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "milk_ledger")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LEDGER_LOCALE", "en")
	v.SetDefault("BILL_CURRENCY_SYMBOL", "₹")
	v.SetDefault("WHATSAPP_BASE_URL", "https://wa.me")
	v.SetDefault("WHATSAPP_DEFAULT_COUNTRY_CODE", "")
	v.SetDefault("SELLER_NAME", "Milk Ledger")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(DefaultCORS.AllowedOrigins, ","))
	v.SetDefault("CORS_ALLOWED_METHODS", strings.Join(DefaultCORS.AllowedMethods, ","))
	v.SetDefault("CORS_ALLOWED_HEADERS", strings.Join(DefaultCORS.AllowedHeaders, ","))
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Driver:    strings.ToLower(v.GetString("STORE_DRIVER")),
			Namespace: v.GetString("STORE_NAMESPACE"),
			FilePath:  v.GetString("STORE_FILE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Ledger: LedgerConfig{
			Locale: v.GetString("LEDGER_LOCALE"),
		},
		Bill: BillConfig{
			CurrencySymbol:     v.GetString("BILL_CURRENCY_SYMBOL"),
			WhatsAppBaseURL:    v.GetString("WHATSAPP_BASE_URL"),
			DefaultCountryCode: v.GetString("WHATSAPP_DEFAULT_COUNTRY_CODE"),
			SellerName:         v.GetString("SELLER_NAME"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH is required for the file store")
		}
	case StoreMemory, StoreRedis, StorePostgres, StoreMySQL:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use file, memory, redis, postgres or mysql)", c.Store.Driver)
	}
	if c.Store.Namespace == "" {
		return fmt.Errorf("STORE_NAMESPACE must not be empty")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Duration <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_DURATION must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// PerSecond is the sustained request rate the limiter allows.
func (c *RateLimitConfig) PerSecond() float64 {
	return float64(c.Requests) / float64(c.Duration)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// MySQLDSN is the go-sql-driver DSN for the same settings.
func (c *DatabaseConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
