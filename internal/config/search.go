package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

// SearchConfig points at the semantic search backend. The process
// refuses to start without it rather than run half-configured.
type SearchConfig struct {
	BaseURL string `env:"SEARCH_API_URL,required,notEmpty"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}
