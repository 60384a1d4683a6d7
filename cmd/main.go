package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/mech-backend/api"
	"github.com/saeidalz13/mech-backend/content"
	"github.com/saeidalz13/mech-backend/db"
	"github.com/saeidalz13/mech-backend/internal/config"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.Stage == config.StageDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.RulesFile).Msg("load rules")
	}
	catalog := content.MustLoadCatalog(rules.Costs, cfg.CatalogFile)
	log.Info().
		Int("modules", len(catalog.Modules())).
		Msg("catalog loaded")

	database := db.MustConnect(cfg.DbDriver, cfg.DatabaseUrl, cfg.MigrationDir)
	if database != nil {
		defer database.Close()
	}

	server := api.NewServer(
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithDb(database),
		api.WithCatalog(catalog),
		api.WithRules(rules),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go server.SessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:              server.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", server.Addr()).Str("stage", server.Stage()).Str("db", cfg.DbDriver).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
