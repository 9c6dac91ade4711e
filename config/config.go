package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret   string
	AdminAPIKey string

	Shipping ShippingConfig
}

// ShippingConfig is the flat-rate shipping table: one discounted district,
// a standard rate for everywhere else. Amounts are in poisha.
type ShippingConfig struct {
	StandardRate       int64
	DiscountedRate     int64
	DiscountedDistrict string
}

const (
	defaultStandardRate       = 12000 // 120 BDT
	defaultDiscountedRate     = 6000  // 60 BDT
	defaultDiscountedDistrict = "Dhaka"
)

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		Shipping: ShippingConfig{
			StandardRate:       getEnvInt64("SHIPPING_COST", defaultStandardRate),
			DiscountedRate:     getEnvInt64("SHIPPING_COST_DHAKA", defaultDiscountedRate),
			DiscountedDistrict: getEnv("SHIPPING_DISCOUNT_DISTRICT", defaultDiscountedDistrict),
		},
	}
}

// DSN builds the Postgres connection string when DATABASE_URL is not set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
