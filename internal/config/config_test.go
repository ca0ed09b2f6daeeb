package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "knowthatperson_test")
	os.Setenv("APP_BASE_URL", "https://knowthatperson.example")
	os.Setenv("ADMIN_JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.App.BaseURL == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.MongoDB.Database != "knowthatperson_test" {
		t.Fatalf("unexpected database: %s", cfg.MongoDB.Database)
	}
	if cfg.Pagination.DefaultLimit != 20 || cfg.Pagination.MaxLimit != 100 {
		t.Fatalf("unexpected pagination defaults: %+v", cfg.Pagination)
	}
}
