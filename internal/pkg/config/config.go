package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Bank     BankConfig
	Employee EmployeeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=banque"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,            default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,              default=0"`
	IdempotencyTTL time.Duration `env:"REDIS_IDEMPOTENCY_TTL, default=24h"`
}

// BankConfig selects the registration and account behaviour.
type BankConfig struct {
	ApprovalRequired bool `env:"BANK_APPROVAL_REQUIRED, default=false"`
	LegacyApproval   bool `env:"BANK_LEGACY_APPROVAL,   default=false"`
	Freezable        bool `env:"BANK_FREEZABLE,         default=true"`
	KeepHistory      bool `env:"BANK_KEEP_HISTORY,      default=true"`
	AuditWorkers     int  `env:"AUDIT_WORKERS,          default=8"`
}

type EmployeeConfig struct {
	Username string `env:"EMPLOYEE_USERNAME, default=admin"`
	Password string `env:"EMPLOYEE_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Employee.Password == "" {
		errs = append(errs, errors.New("EMPLOYEE_PASSWORD is required"))
	}
	if c.Bank.AuditWorkers <= 0 {
		errs = append(errs, errors.New("AUDIT_WORKERS must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Development reports whether ENV selects the development profile.
func (c *Config) Development() bool {
	return c.Env == "development"
}
