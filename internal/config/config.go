package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Business  BusinessConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Host  string
	Port  string
	Debug bool
}

// DatabaseConfig selects the backing medium of the store. The sqlite file is
// the default so the app keeps working with no network.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type PrinterConfig struct {
	Type     string
	USBPath  string
	Address  string
	FilePath string
	Width    int
}

// BusinessConfig is the default business profile seeded into settings.
type BusinessConfig struct {
	Name     string
	Location string
	Phone    string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "barber-oil-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_HOST", "127.0.0.1")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "./data/barber-oil.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "barberoil")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Chicago")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("PRINTER_TYPE", "")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_FILE_PATH", "./data/tickets.bin")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("BUSINESS_NAME", "Barber Oil")
	viper.SetDefault("BUSINESS_LOCATION", "Hohenwald, Tennessee")
	viper.SetDefault("BUSINESS_PHONE", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Host:  viper.GetString("APP_HOST"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           viper.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Printer: PrinterConfig{
			Type:     viper.GetString("PRINTER_TYPE"),
			USBPath:  viper.GetString("PRINTER_USB_PATH"),
			Address:  viper.GetString("PRINTER_ADDRESS"),
			FilePath: viper.GetString("PRINTER_FILE_PATH"),
			Width:    viper.GetInt("PRINTER_WIDTH"),
		},
		Business: BusinessConfig{
			Name:     viper.GetString("BUSINESS_NAME"),
			Location: viper.GetString("BUSINESS_LOCATION"),
			Phone:    viper.GetString("BUSINESS_PHONE"),
		},
	}
}

// Addr is the listen address of the HTTP server.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
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

// SQLitePath returns the cleaned sqlite file path.
func (c *DatabaseConfig) SQLitePath() string {
	if c.Path == "" {
		return filepath.Clean("./data/barber-oil.db")
	}
	return filepath.Clean(c.Path)
}
