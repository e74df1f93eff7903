package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	StorageDriver  string
	DatabaseURL    string
	SQLitePath     string
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string

	// The single accepted credential pair.
	LoginUsername  string
	LoginPassword  string
	LoginRateLimit string

	MaxAttachmentBytes int64
	AllowedOrigins     []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "invoice_drafts.db")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "invoice-drafting-app")
	viper.SetDefault("SESSION_COOKIE_NAME", "loggedIn")
	viper.SetDefault("LOGIN_USERNAME", "user")
	viper.SetDefault("LOGIN_PASSWORD", "password")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("MAX_ATTACHMENT_BYTES", 10<<20)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		StorageDriver:      strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		SQLitePath:         viper.GetString("SQLITE_PATH"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		SessionCookieName:  viper.GetString("SESSION_COOKIE_NAME"),
		LoginUsername:      viper.GetString("LOGIN_USERNAME"),
		LoginPassword:      viper.GetString("LOGIN_PASSWORD"),
		LoginRateLimit:     viper.GetString("LOGIN_RATE_LIMIT"),
		MaxAttachmentBytes: viper.GetInt64("MAX_ATTACHMENT_BYTES"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "loggedIn"
	}

	if cfg.MaxAttachmentBytes <= 0 {
		cfg.MaxAttachmentBytes = 10 << 20
		log.Printf("Warning: MAX_ATTACHMENT_BYTES must be positive. Defaulting to %d.\n", cfg.MaxAttachmentBytes)
	}

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}
