package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"quotedesk-backend/config"
	"quotedesk-backend/logger"
	"quotedesk-backend/routes"
	"quotedesk-backend/services"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}
	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if err := config.ConnectDB(ctx, cfg.DB); err != nil {
		return err
	}
	if cfg.DB.AutoMigrate {
		if err := config.Migrate(ctx, config.DB, cfg.DB.Driver); err != nil {
			return err
		}
	}

	var (
		reminders *services.ReminderService
		scheduler *cron.Cron
	)
	if cfg.Twilio.Configured() {
		reminders = services.NewReminderService(config.DB, services.NewTwilioSender(cfg.Twilio), cfg.Twilio, cfg.Reminder)
		c, err := reminders.StartScheduler(ctx, cfg.Reminder.Schedule)
		if err != nil {
			return err
		}
		scheduler = c
	} else {
		log.Info().Msg("twilio not configured, appointment reminders disabled")
	}

	r, err := routes.SetupRouter(cfg, log, reminders)
	if err != nil {
		return err
	}
	printRoutes(log, r)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if sqlDB, err := config.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func printRoutes(log zerolog.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}
}
