package database

import (
	"testing"

	"nivesh/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5433", DBUser: "app", DBPassword: "secret", DBName: "nivesh", DBSSLMode: "require"}
	want := "host=db port=5433 user=app password=secret dbname=nivesh sslmode=require"
	if got := DSN(cfg); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestNewMigratorRejectsBadURL(t *testing.T) {
	if _, err := NewMigrator("not-a-url"); err == nil {
		t.Error("expected error for unsupported database url")
	}
}
