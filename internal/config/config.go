package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/evoss/adloom/pkg/client"
)

// Config is everything the binary reads from the environment. Defaults match
// the platform's local docker-compose port layout.
type Config struct {
	AuthURL     string `env:"ADLOOM_AUTH_URL" envDefault:"http://localhost:8001"`
	BillingURL  string `env:"ADLOOM_BILLING_URL" envDefault:"http://localhost:8002"`
	CampaignURL string `env:"ADLOOM_CAMPAIGN_URL" envDefault:"http://localhost:8003"`
	AIURL       string `env:"ADLOOM_AI_URL" envDefault:"http://localhost:8004"`
	AssetURL    string `env:"ADLOOM_ASSET_URL" envDefault:"http://localhost:8005"`
	Token       string `env:"ADLOOM_TOKEN"`
	Debug       bool   `env:"ADLOOM_DEBUG"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ClientConfig maps the service addresses into the API client's config.
func (c Config) ClientConfig() client.Config {
	return client.Config{
		AuthURL:     c.AuthURL,
		BillingURL:  c.BillingURL,
		CampaignURL: c.CampaignURL,
		AIURL:       c.AIURL,
		AssetURL:    c.AssetURL,
	}
}
