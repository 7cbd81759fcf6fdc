package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offer-proxy/internal/api"
	"offer-proxy/internal/cache"
	"offer-proxy/internal/config"
	"offer-proxy/internal/service"
	"offer-proxy/internal/storage"
	"offer-proxy/internal/upstream"

	"github.com/rs/zerolog/log"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Offer cache: in-memory by default, shared Postgres table when configured
	var store service.Store
	if cfg.Postgres.Host != "" {
		pg, err := storage.New(rootCtx, cfg, cfg.CacheTTL())
		if err != nil {
			log.Fatal().Err(err).Msg("init postgres cache store")
		}
		defer pg.Close()
		pg.StartSweeper(rootCtx, cfg.SweepInterval())
		store = pg
		log.Info().Str("host", cfg.Postgres.Host).Msg("using postgres cache store")
	} else {
		store = cache.New(cfg.CacheTTL())
	}

	if cfg.Upstream.APIKey == "" {
		log.Warn().Msg("upstream API key not configured; offer requests will fail")
	}
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.UpstreamTimeout())
	svc := service.New(client, store)

	// HTTP
	h := api.NewOffersHandler(svc)
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
