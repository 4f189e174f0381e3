package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/caliando/pkg/log"
)

type WhatsAppConfig struct {
	Token         string `env:"WHATSAPP_TOKEN,required,notEmpty"`
	PhoneNumberID string `env:"WHATSAPP_PHONE_NUMBER_ID,required,notEmpty"`
	VerifyToken   string `env:"WHATSAPP_VERIFY_TOKEN,required,notEmpty"`
	GraphBaseURL  string `env:"WHATSAPP_GRAPH_URL" envDefault:"https://graph.facebook.com/v18.0"`
}

func NewWhatsAppConfig(ctx context.Context) *WhatsAppConfig {
	c := &WhatsAppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse WhatsApp config")
	}
	return c
}
