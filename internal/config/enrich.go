package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

// EnrichConfig configures the optional LLM reply prettifier. With no
// API key the bot runs on plain templates only.
type EnrichConfig struct {
	APIKey  string `env:"ENRICH_API_KEY"`
	BaseURL string `env:"ENRICH_API_URL" envDefault:"https://api.openai.com/v1"`
	Model   string `env:"ENRICH_MODEL" envDefault:"gpt-4o-mini"`
}

func NewEnrichConfig(ctx context.Context) *EnrichConfig {
	c := &EnrichConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Enrich config")
	}
	return c
}

func (c *EnrichConfig) Enabled() bool {
	return c.APIKey != ""
}
