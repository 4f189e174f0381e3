package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

type AppConfig struct {
	Port int `env:"PORT" envDefault:"3000"`

	// Transport flags
	EnableWhatsApp bool `env:"ENABLE_WHATSAPP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Inactivity handling: a nudge first, then the session is closed.
	// The close delay must stay strictly above the warning delay.
	InactivityWarn  time.Duration `env:"INACTIVITY_WARN" envDefault:"5m"`
	InactivityClose time.Duration `env:"INACTIVITY_CLOSE" envDefault:"7m"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if c.InactivityClose <= c.InactivityWarn {
		log.FromCtx(ctx).Fatal().
			Dur("warn", c.InactivityWarn).
			Dur("close", c.InactivityClose).
			Msg("INACTIVITY_CLOSE must be greater than INACTIVITY_WARN")
	}
	return c
}
