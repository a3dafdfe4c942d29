package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AngelCh415/bookings-analysis/internal/config"
	"github.com/AngelCh415/bookings-analysis/internal/httpx"
	"github.com/AngelCh415/bookings-analysis/internal/ingest"
	"github.com/AngelCh415/bookings-analysis/internal/metrics"
	"github.com/AngelCh415/bookings-analysis/internal/observability"
	"github.com/AngelCh415/bookings-analysis/internal/store"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	obs := observability.NewMetrics()
	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore(cfg.DatasetTTL, cfg.MaxDatasets)
	st.OnChange = func(n int) { obs.ActiveDatasets.Set(float64(n)) }

	r := httpx.NewRouter(httpx.Deps{
		Log:      logger,
		Cfg:      cfg,
		Loader:   ingest.NewLoader(cl, st, logger, obs, cfg),
		Exporter: ingest.NewExporter(cl, cfg, obs),
		Metrics:  metrics.NewService(st, obs),
		Obs:      obs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("err", err.Error()))
		}
	}()

	logger.Info("starting server", slog.String("port", cfg.Port), slog.Int64("max_upload_bytes", cfg.MaxUploadBytes))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
