package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often a pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	// PublicBaseURL is the externally reachable URL for this backend; the payment
	// gateway redirects the payer back to {PublicBaseURL}/payment/callback.
	PublicBaseURL string

	DB DBConfig

	JWTSecret string

	Chapa ChapaConfig

	// Deposit collected when a tenant confirms an approved booking.
	DepositAmount   string
	DepositCurrency string

	// CORSAllowedOrigins is a comma-separated allowlist of origins allowed to call
	// the API from a browser (the React frontend's origin in practice).
	CORSAllowedOrigins []string

	// Bootstrap admin created at startup if no user with this email exists.
	AdminEmail    string
	AdminPassword string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type ChapaConfig struct {
	SecretKey string
	BaseURL   string

	// ReturnURL is where Chapa sends the payer after checkout, carrying
	// tx_ref and status query params. Usually the frontend's /payment/callback page.
	ReturnURL string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8080"
		}
	}

	publicBaseURL := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	returnURL := os.Getenv("CHAPA_RETURN_URL")
	if returnURL == "" && publicBaseURL != "" {
		returnURL = publicBaseURL + "/payment/callback"
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		PublicBaseURL:  publicBaseURL,
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "woliso"),
			User:     env("DB_USER", "woliso"),
			Password: env("DB_PASSWORD", "woliso"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		JWTSecret: env("JWT_SECRET", "change-me-in-production"),
		Chapa: ChapaConfig{
			SecretKey: os.Getenv("CHAPA_SECRET_KEY"),
			BaseURL:   env("CHAPA_API_URL", "https://api.chapa.co/v1"),
			ReturnURL: returnURL,
		},
		DepositAmount:   env("DEPOSIT_AMOUNT", "500"),
		DepositCurrency: env("DEPOSIT_CURRENCY", "ETB"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		AdminEmail:    env("ADMIN_EMAIL", "admin@woliso.com"),
		AdminPassword: env("ADMIN_PASSWORD", "Admin@123"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
