package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	JWTSecret      string
	ScanAPIURL     string
	ProductAPIURL  string
	ScanUserID     int64
	ScanLocationID int64
	AdminEmail     string
	AdminPassword  string
}

// Load reads configuration from the environment, with an optional .env file
// filling in anything the environment does not set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:          8080,
		ScanAPIURL:    "http://localhost:9001",
		ProductAPIURL: "http://localhost:9002",
	}

	if raw := getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid PORT: %q", raw)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required (environment variable or .env)")
	}

	cfg.JWTSecret = getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required (environment variable or .env)")
	}

	if raw := getenv("SCAN_API_URL"); raw != "" {
		cfg.ScanAPIURL = strings.TrimRight(raw, "/")
	}
	if raw := getenv("PRODUCT_API_URL"); raw != "" {
		cfg.ProductAPIURL = strings.TrimRight(raw, "/")
	}

	cfg.AdminEmail = getenv("ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@rawstock.local"
	}
	cfg.AdminPassword = getenv("ADMIN_PASSWORD")

	var err error
	if cfg.ScanUserID, err = getenvInt64("SCAN_USER_ID"); err != nil {
		return Config{}, err
	}
	if cfg.ScanLocationID, err = getenvInt64("SCAN_LOCATION_ID"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvInt64(key string) (int64, error) {
	raw := getenv(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}
