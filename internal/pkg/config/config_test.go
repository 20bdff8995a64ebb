package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_DefaultURL(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("unexpected default url %q", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"CERT_API_URL": "https://api.example.com/",
		"CERT_CODE":    "S001",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if cfg.Code != "S001" {
		t.Errorf("expected code S001, got %q", cfg.Code)
	}
}
