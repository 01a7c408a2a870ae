package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"travel-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// APIServer serves route on port until ctx is cancelled, then drains open
// requests before returning.
func APIServer(ctx context.Context, route *chi.Mux, port string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
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

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// StartJobs schedules the background maintenance jobs and stops them when
// ctx is done.
func StartJobs(ctx context.Context, sessions repository.SessionRepository, schedule string, log *zap.Logger) error {
	log = log.With(zap.String("component", "jobs"))

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { cleanSessions(ctx, sessions, log) }); err != nil {
		return fmt.Errorf("schedule session cleanup %q: %w", schedule, err)
	}
	c.Start()
	log.Info("Session cleanup scheduled", zap.String("schedule", schedule))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}

func cleanSessions(ctx context.Context, sessions repository.SessionRepository, log *zap.Logger) {
	removed, err := sessions.CleanExpiredSessions(ctx)
	if err != nil {
		log.Error("Failed to clean expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
}
