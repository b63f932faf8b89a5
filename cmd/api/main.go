package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pairloom/profiles/internal/config"
	"github.com/pairloom/profiles/internal/database"
	"github.com/pairloom/profiles/internal/handler"
	"github.com/pairloom/profiles/internal/logger"
	"github.com/pairloom/profiles/internal/middleware"
	"github.com/pairloom/profiles/internal/repository"
	"github.com/pairloom/profiles/internal/router"
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		// No logger yet; stderr is all there is.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()
	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.New(middlewares, handlers))

	go func() {
		if err := srv.Start(); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}
