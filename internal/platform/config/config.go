package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// LedgerAccounts holds the account codes used when an invoice is posted.
type LedgerAccounts struct {
	Receivables string
	Payables    string
	TaxPayable  string
	Revenue     string
	Expense     string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	AutoMigrate   bool // apply pending migrations when the server starts
	JWTSecret     string

	StorageDriver string
	RedisURL      string // optional, shares rate limit counters between instances
	RateLimit     string // ulule formatted rate, e.g. "300-M"

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string

	// CurrencyScale is the number of decimal places conversions are rounded to.
	CurrencyScale int32

	Accounts LedgerAccounts
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("AUTO_MIGRATE", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("CURRENCY_SCALE", 2)
	viper.SetDefault("LEDGER_RECEIVABLES_ACCOUNT", "1.1.02")
	viper.SetDefault("LEDGER_PAYABLES_ACCOUNT", "2.1.01")
	viper.SetDefault("LEDGER_TAX_PAYABLE_ACCOUNT", "2.1.02")
	viper.SetDefault("LEDGER_REVENUE_ACCOUNT", "4.1.01")
	viper.SetDefault("LEDGER_EXPENSE_ACCOUNT", "5.1.01")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		AutoMigrate:        viper.GetBool("AUTO_MIGRATE"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		StorageDriver:      strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		RedisURL:           viper.GetString("REDIS_URL"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		CurrencyScale:      viper.GetInt32("CURRENCY_SCALE"),
		Accounts: LedgerAccounts{
			Receivables: viper.GetString("LEDGER_RECEIVABLES_ACCOUNT"),
			Payables:    viper.GetString("LEDGER_PAYABLES_ACCOUNT"),
			TaxPayable:  viper.GetString("LEDGER_TAX_PAYABLE_ACCOUNT"),
			Revenue:     viper.GetString("LEDGER_REVENUE_ACCOUNT"),
			Expense:     viper.GetString("LEDGER_EXPENSE_ACCOUNT"),
		},
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key. Set it before running in production.")
	}

	if cfg.CurrencyScale < 0 {
		return nil, fmt.Errorf("CURRENCY_SCALE must not be negative, got %d", cfg.CurrencyScale)
	}

	return cfg, nil
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
