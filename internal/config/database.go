package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

// DatabaseConfig points at the read-only catalog (detail tables and the
// sayings collection). Session state never touches it.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL,required,notEmpty"`
}

func NewDatabaseConfig(ctx context.Context) *DatabaseConfig {
	c := &DatabaseConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Database config")
	}
	return c
}
