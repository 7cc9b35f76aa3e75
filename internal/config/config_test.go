package config

import (
	"testing"
	"time"

	"github.com/fairwaypot/settlement/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PlatformFeeBps != 1000 {
		t.Fatalf("unexpected PlatformFeeBps: %d", cfg.PlatformFeeBps)
	}
	if cfg.SettlementMaxPositionWorkers != 8 {
		t.Fatalf("unexpected SettlementMaxPositionWorkers: %d", cfg.SettlementMaxPositionWorkers)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("unexpected SweepInterval: %s", cfg.SweepInterval)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
}

func TestLoad_PlatformFeeBpsValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PLATFORM_FEE_BPS", "10000")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for PLATFORM_FEE_BPS=10000")
	}
}

func TestLoad_QStashRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://settlement.internal.example.com")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TOKEN")
	}
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qstash-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://settlement.internal.example.com")
	t.Setenv("QSTASH_RETRIES", "5")
	t.Setenv("QSTASH_TIMEOUT", "7s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStashEnabled || cfg.QStashToken != "qstash-token" {
		t.Fatalf("unexpected qstash config: %+v", cfg)
	}
	if cfg.QStashRetries != 5 {
		t.Fatalf("unexpected QStashRetries: %d", cfg.QStashRetries)
	}
	if cfg.QStashTimeout != 7*time.Second {
		t.Fatalf("unexpected QStashTimeout: %s", cfg.QStashTimeout)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}
