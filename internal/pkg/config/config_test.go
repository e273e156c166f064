package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.Redis.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl defaults: %s %s", cfg.TokenTTL, cfg.Redis.IdempotencyTTL)
	}
	if cfg.Mongo.Database != "banque" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected storage defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Bank.ApprovalRequired || cfg.Bank.LegacyApproval || !cfg.Bank.Freezable || !cfg.Bank.KeepHistory || cfg.Bank.AuditWorkers != 8 {
		t.Fatalf("unexpected bank defaults: %+v", cfg.Bank)
	}
	if cfg.Employee.Username != "admin" {
		t.Fatalf("unexpected employee username %q", cfg.Employee.Username)
	}
	if !cfg.Development() {
		t.Fatalf("expected development profile")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                    "production",
		"JWT_SECRET":             "s3cret",
		"BANK_APPROVAL_REQUIRED": "true",
		"BANK_FREEZABLE":         "false",
		"AUDIT_WORKERS":          "2",
		"REDIS_IDEMPOTENCY_TTL":  "30m",
		"EMPLOYEE_PASSWORD":      "pw",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if !cfg.Bank.ApprovalRequired || cfg.Bank.Freezable || cfg.Bank.AuditWorkers != 2 {
		t.Fatalf("overrides not applied: %+v", cfg.Bank)
	}
	if cfg.Redis.IdempotencyTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.Redis.IdempotencyTTL)
	}
	if cfg.Development() {
		t.Fatalf("production must not be development")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadWith_InvalidValue(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUDIT_WORKERS": "many",
	}))
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate_Missing(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"AUDIT_WORKERS": "0"}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"JWT_SECRET", "EMPLOYEE_PASSWORD", "AUDIT_WORKERS"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err)
		}
	}
}
