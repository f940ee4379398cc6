package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.App.Port == "" {
		t.Error("expected a default app port")
	}
	if cfg.Database.Host == "" {
		t.Error("expected a default database host")
	}
	if cfg.JWT.ExpiryHours <= 0 {
		t.Error("expected a positive JWT expiry")
	}
	if cfg.JWT.RefreshExpiryHours <= cfg.JWT.ExpiryHours {
		t.Error("expected refresh expiry to outlive access expiry")
	}
}

func TestDSNContainsAllParts(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", Name: "pos", User: "postgres",
		Password: "secret", SSLMode: "disable", Timezone: "UTC",
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=db", "dbname=pos", "port=5432", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
