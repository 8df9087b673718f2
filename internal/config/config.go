package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Port           string
	Environment    string
	JWTSecret      string
	StudioTimezone string
	ResendAPIKey   string
	EmailFrom      string
	StudioEmail    string
	MigrationsPath string
}

// Load reads configuration from a .env file when present, falling back to
// the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Port:           os.Getenv("PORT"),
		Environment:    os.Getenv("ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StudioTimezone: os.Getenv("STUDIO_TIMEZONE"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		StudioEmail:    os.Getenv("STUDIO_EMAIL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.StudioTimezone == "" {
		cfg.StudioTimezone = "Europe/Madrid"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = `"La Camereta" <info@lacamereta.com>`
	}
	if cfg.StudioEmail == "" {
		cfg.StudioEmail = "info@lacamereta.com"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

// Location resolves the studio timezone. Every decomposition of a booking
// timestamp into a slot date and start time goes through this one location.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.StudioTimezone)
	if err != nil {
		return nil, fmt.Errorf("load studio timezone %q: %w", c.StudioTimezone, err)
	}
	return loc, nil
}
