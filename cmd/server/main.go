package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/campsite/internal/auth"
	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/config"
	"github.com/dmitrymomot/campsite/internal/handler"
	"github.com/dmitrymomot/campsite/internal/janitor"
	"github.com/dmitrymomot/campsite/internal/review"
	"github.com/dmitrymomot/campsite/migrations"
	"github.com/dmitrymomot/campsite/pkg/db"
	"github.com/dmitrymomot/campsite/pkg/geocode"
	"github.com/dmitrymomot/campsite/pkg/logger"
	"github.com/dmitrymomot/campsite/pkg/redis"
	"github.com/dmitrymomot/campsite/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Environment == "development" {
		level = slog.LevelDebug
	}
	log := logger.NewWithSentry(cfg.Sentry, level)

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, migrations.FS, "schema_migrations", log); err != nil {
		return err
	}

	rdb, err := redis.Open(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}

	geocoder, err := geocode.New(cfg.Geocode)
	if err != nil {
		return err
	}

	campStore := campground.NewPgStore(pool)
	reviewStore := review.NewPgStore(pool)

	authSvc := auth.NewService(auth.NewPgUserStore(pool), auth.NewRedisSessionStore(rdb), cfg.SessionTTL, log)
	campSvc := campground.NewService(campStore, blobs, geocoder, reviewStore, log)
	reviewSvc := review.NewService(reviewStore, campStore, log)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: handler.NewRouter(handler.Services{
			Auth:        authSvc,
			Campgrounds: campSvc,
			Reviews:     reviewSvc,
			Blobs:       blobs,
			ImagePrefix: cfg.ImagePrefix,
			Log:         log,
		}),
	}

	var scheduler *cron.Cron
	if cfg.JanitorEnabled {
		scheduler = cron.New()
		j := janitor.New(blobs, campStore, cfg.ImagePrefix, log)
		if _, err := j.Schedule(scheduler, cfg.JanitorSchedule); err != nil {
			return err
		}
		scheduler.Start()
		log.InfoContext(ctx, "janitor scheduled", slog.String("schedule", cfg.JanitorSchedule))
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server starting", slog.String("addr", cfg.Addr))
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

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}
