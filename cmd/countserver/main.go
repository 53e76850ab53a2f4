package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/momor666/link-grammar/config"
	"github.com/momor666/link-grammar/internal/countserver"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	srv := &countserver.Server{
		Config:  cfg,
		Metrics: countserver.NewMetrics(),
	}

	chain := alice.New(recoverer, requestLogger)
	if cfg.SecretKey != "" {
		chain = chain.Append(jwtAuth([]byte(cfg.SecretKey)))
	}

	mux := http.NewServeMux()
	mux.Handle("/count", chain.Then(srv.CountHandler()))
	mux.Handle("/healthz", srv.HealthHandler())
	mux.Handle("/metrics", srv.Metrics.Handler())

	httpSrv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: mux,
	}
	idleConnsClosed := make(chan struct{})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)

		if err := httpSrv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.BindAddr).Msg("countserver listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
