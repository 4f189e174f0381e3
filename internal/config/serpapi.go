package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

type SerpAPIConfig struct {
	Key      string `env:"SERPAPI_KEY,required,notEmpty"`
	Location string `env:"EVENTS_LOCATION" envDefault:"Cali, Colombia"`
	BaseURL  string `env:"SERPAPI_URL" envDefault:"https://serpapi.com"`
}

func NewSerpAPIConfig(ctx context.Context) *SerpAPIConfig {
	c := &SerpAPIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse SerpAPI config")
	}
	return c
}
