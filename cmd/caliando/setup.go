package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/internal/providers/catalog"
	"github.com/sandevgo/caliando/internal/providers/llm"
	"github.com/sandevgo/caliando/internal/providers/search"
	"github.com/sandevgo/caliando/internal/providers/serpapi"
	"github.com/sandevgo/caliando/internal/service/dispatcher"
	"github.com/sandevgo/caliando/internal/session"
	"github.com/sandevgo/caliando/internal/transport/telegram"
	"github.com/sandevgo/caliando/internal/transport/whatsapp"
	"github.com/sandevgo/caliando/pkg/log"
	"github.com/sandevgo/caliando/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	initEnv(ctx)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	if !appCfg.EnableWhatsApp && !appCfg.EnableTelegram {
		logger.Fatal().Msg("no transport enabled, set ENABLE_WHATSAPP or ENABLE_TELEGRAM")
	}
	searchCfg := config.NewSearchConfig(ctx)
	serpCfg := config.NewSerpAPIConfig(ctx)
	dbCfg := config.NewDatabaseConfig(ctx)
	enrichCfg := config.NewEnrichConfig(ctx)

	// 2. Catalog storage (read-only)
	pool, err := pgxpool.New(ctx, dbCfg.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to catalog database")
	}
	services = append(services, srv.NewCleanup(func() error {
		pool.Close()
		return nil
	}))
	repo := catalog.NewRepo(pool)

	// 3. Lookup providers
	searcher := search.NewClient(searchCfg.BaseURL)
	serp := serpapi.NewClient(serpCfg.BaseURL, serpCfg.Key, serpCfg.Location)

	var enricher dispatcher.Enricher
	if enrichCfg.Enabled() {
		enricher = llm.NewEnricher(enrichCfg.BaseURL, enrichCfg.APIKey, enrichCfg.Model)
	} else {
		logger.Info().Msg("reply enrichment disabled, running on plain templates")
	}

	// 4. Sessions
	sessions := session.NewManager(session.Config{
		WarnDelay:  appCfg.InactivityWarn,
		CloseDelay: appCfg.InactivityClose,
	})

	// 5. Transports. Each one gets its own dispatcher so outbound
	// replies always leave through the channel the message came in on;
	// user-ID spaces are disjoint, so sessions never mix.
	if appCfg.EnableWhatsApp {
		waCfg := config.NewWhatsAppConfig(ctx)
		d := dispatcher.New(ctx, dispatcher.Config{
			Sessions:  sessions,
			Messenger: whatsapp.NewSender(waCfg),
			Search:    searcher,
			Catalog:   repo,
			Dict:      serp,
			Events:    serp,
			Enrich:    enricher,
		})
		services = append(services, whatsapp.NewWebhook(ctx, appCfg, waCfg, d))
	}

	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		d := dispatcher.New(ctx, dispatcher.Config{
			Sessions:  sessions,
			Messenger: telegram.NewSender(bot),
			Search:    searcher,
			Catalog:   repo,
			Dict:      serp,
			Events:    serp,
			Enrich:    enricher,
		})
		bot.SetHandler(d)
		services = append(services, bot)
	}

	return services
}

func initEnv(ctx context.Context) {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return
	}
	logger.Debug().Msg("loaded .env file")
}
