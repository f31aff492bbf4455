package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret      string
	JWTIssuer      string
	TokenExpiryMin int

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// Reconciliation matcher tunables.
	ReconDateWindowDays  int
	ReconAmountTolerance decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "siscont-ledger")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 60)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RECON_DATE_WINDOW_DAYS", 3)
	viper.SetDefault("RECON_AMOUNT_TOLERANCE", "0.50")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.TokenExpiryMin = viper.GetInt("TOKEN_EXPIRY_MINUTES")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ReconDateWindowDays = viper.GetInt("RECON_DATE_WINDOW_DAYS")
	tolerance, err := decimal.NewFromString(viper.GetString("RECON_AMOUNT_TOLERANCE"))
	if err != nil {
		log.Printf("Warning: Invalid value for RECON_AMOUNT_TOLERANCE ('%s'). Defaulting to 0.50.\n", viper.GetString("RECON_AMOUNT_TOLERANCE"))
		tolerance = decimal.RequireFromString("0.50")
	}
	cfg.ReconAmountTolerance = tolerance

	return cfg, nil
}
