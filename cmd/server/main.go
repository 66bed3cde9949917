package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"revu/config"
	"revu/internal/database"
	"revu/internal/router"
	"revu/pkg/cloudinary"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.Configured() {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatal().Err(err).Msg("cloudinary")
		}
	} else {
		log.Warn().Msg("cloudinary not configured; image uploads disabled")
	}

	engine, sessions := router.Setup(cfg, db, cloud, log)

	// clear expired session rows on a schedule
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Session.PruneSpec, func() {
		n, err := sessions.PruneExpired()
		if err != nil {
			log.Error().Err(err).Msg("session prune")
			return
		}
		if n > 0 {
			log.Info().Int64("pruned", n).Msg("expired sessions removed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("session prune schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
