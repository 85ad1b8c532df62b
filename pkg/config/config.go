package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	RateLimit     string

	// AllowedOrigins restricts CORS; empty means allow all (development).
	AllowedOrigins []string

	// ReceiptPrefix is the fixed business prefix of every receipt number.
	ReceiptPrefix string

	// DisplayTimezone names the timezone that defines receipt-number days and
	// report boundaries. Timestamps are stored in UTC regardless.
	DisplayTimezone string
	DisplayLocation *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", "")
	viper.SetDefault("RECEIPT_PREFIX", "SWIM")
	viper.SetDefault("DISPLAY_TIMEZONE", "Asia/Taipei")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.ReceiptPrefix = viper.GetString("RECEIPT_PREFIX")

	if origins := viper.GetString("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.DisplayTimezone = viper.GetString("DISPLAY_TIMEZONE")
	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		// Taipei offset without DST; used when tzdata is unavailable.
		log.Printf("Warning: could not load timezone %q (%v), using fixed UTC+8.\n", cfg.DisplayTimezone, err)
		loc = time.FixedZone("UTC+8", 8*60*60)
	}
	cfg.DisplayLocation = loc

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is using the default value in production.")
	}

	return cfg, nil
}
