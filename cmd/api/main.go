package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/bootstrap"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/dam-monitoring-system/internal/http"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	bootstrap.Logging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs, db, err := bootstrap.Services(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer db.Close()

	app := httpHandlers.NewApp()
	httpHandlers.Register(app, svcs)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
