package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration, read from the environment.
type Config struct {
	App      AppConfig
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	Lock     LockConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogLevel    string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type DynamoDBConfig struct {
	Endpoint          string
	PayAccountsTable  string
	TransactionsTable string
}

type PaymentConfig struct {
	StripeSecretKey string
	// MockMode swaps the real gateway for an in-process fake.
	MockMode bool
}

// RedisConfig is optional; an empty Addr disables the distributed user lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LockConfig struct {
	TTL  time.Duration
	Wait time.Duration
}

// Enabled reports whether a Redis server was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

// Load reads configuration from environment variables. A .env file, when
// present, is already loaded into the environment by godotenv.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("AWS_REGION", "us-east-1")
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")

	v.SetDefault("PAY_ACCOUNTS_TABLE", "pay_accounts")
	v.SetDefault("TRANSACTIONS_TABLE", "transactions")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ACCOUNT_LOCK_TTL", "30s")
	v.SetDefault("ACCOUNT_LOCK_WAIT", "10s")
}

func bindConfig(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.App.Port = v.GetString("PORT")
	cfg.App.Environment = v.GetString("APP_ENV")
	cfg.App.LogLevel = v.GetString("LOG_LEVEL")

	cfg.AWS.Region = v.GetString("AWS_REGION")
	cfg.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	cfg.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")

	cfg.DynamoDB.Endpoint = v.GetString("DYNAMODB_ENDPOINT")
	cfg.DynamoDB.PayAccountsTable = v.GetString("PAY_ACCOUNTS_TABLE")
	cfg.DynamoDB.TransactionsTable = v.GetString("TRANSACTIONS_TABLE")

	cfg.Payment.StripeSecretKey = v.GetString("STRIPE_SECRET_KEY")
	cfg.Payment.MockMode = isTruthy(v.GetString("PAYMENT_GATEWAY_MOCK"))

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	cfg.Lock.TTL = v.GetDuration("ACCOUNT_LOCK_TTL")
	cfg.Lock.Wait = v.GetDuration("ACCOUNT_LOCK_WAIT")

	return cfg
}

// Validate checks the values the service cannot start without. A missing
// Stripe key is allowed: payment endpoints then answer as not configured.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Port) == "" {
		return errors.New("PORT is required")
	}
	if c.DynamoDB.PayAccountsTable == "" || c.DynamoDB.TransactionsTable == "" {
		return errors.New("PAY_ACCOUNTS_TABLE and TRANSACTIONS_TABLE are required")
	}
	if c.Redis.Enabled() && c.Lock.TTL <= 0 {
		return errors.New("ACCOUNT_LOCK_TTL must be positive")
	}
	if c.Lock.Wait < 0 {
		return errors.New("ACCOUNT_LOCK_WAIT must not be negative")
	}
	return nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
