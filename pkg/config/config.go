package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RedisURL     string
	RateCacheTTL time.Duration

	// Business thresholds. Injected into the services at startup; nothing
	// reads these globally afterwards.
	KYCThreshold         decimal.Decimal
	DefaultLowStockLevel decimal.Decimal
	AllowTransactionVoid bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "bureau-change-app")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_CACHE_TTL", "5m")
	viper.SetDefault("TRANSACTION_KYC_THRESHOLD", "1000000")
	viper.SetDefault("LOW_STOCK_THRESHOLD", "1000")
	viper.SetDefault("ALLOW_TRANSACTION_VOID", false)

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

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	rateCacheTTLStr := viper.GetString("RATE_CACHE_TTL")
	rateCacheTTL, err := time.ParseDuration(rateCacheTTLStr)
	if err != nil {
		rateCacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", rateCacheTTLStr, rateCacheTTL)
	}
	cfg.RateCacheTTL = rateCacheTTL

	kycThresholdStr := viper.GetString("TRANSACTION_KYC_THRESHOLD")
	kycThreshold, err := decimal.NewFromString(kycThresholdStr)
	if err != nil {
		kycThreshold = decimal.NewFromInt(1000000)
		log.Printf("Warning: Invalid value for TRANSACTION_KYC_THRESHOLD ('%s'). Defaulting to %s.\n", kycThresholdStr, kycThreshold)
	}
	cfg.KYCThreshold = kycThreshold

	lowStockStr := viper.GetString("LOW_STOCK_THRESHOLD")
	lowStock, err := decimal.NewFromString(lowStockStr)
	if err != nil {
		lowStock = decimal.NewFromInt(1000)
		log.Printf("Warning: Invalid value for LOW_STOCK_THRESHOLD ('%s'). Defaulting to %s.\n", lowStockStr, lowStock)
	}
	cfg.DefaultLowStockLevel = lowStock

	cfg.AllowTransactionVoid = viper.GetBool("ALLOW_TRANSACTION_VOID")

	return cfg, nil
}
