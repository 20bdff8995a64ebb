// Package config holds the client-side configuration shared by the CLI
// screens: the single backend base URL and the credentials to sign in with.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIURL   string `env:"CERT_API_URL,  default=http://localhost:8080"`
	Code     string `env:"CERT_CODE"`
	Password string `env:"CERT_PASSWORD"`
	LogLevel string `env:"LOG_LEVEL,     default=warn"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &cfg, nil
}
