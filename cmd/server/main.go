package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpadapter "tgscope/internal/adapters/http"
	pg "tgscope/internal/adapters/postgres"
	"tgscope/internal/adapters/telegram"
	"tgscope/internal/config"
	"tgscope/internal/metrics"
	"tgscope/internal/ports"
	"tgscope/internal/services/classifier"
	"tgscope/internal/services/lookup"
	"tgscope/internal/services/profile"
	"tgscope/internal/workers/auditor"
)

func main() {
	cfg, err := config.Load()
	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()
	if err != nil {
		logger.Warn("config incomplete", zap.Error(err))
	}
	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := telegram.New(cfg.BotToken, cfg.BackendRPS)
	if err != nil {
		logger.Fatal("telegram connect error", zap.Error(err))
	}
	var _ ports.Backend = backend

	// Audit storage is optional; without DATABASE_URL the service runs
	// fully stateless.
	var audit ports.AuditRepository = auditor.NopRepository{}
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
		if err != nil {
			logger.Fatal("db connect error", zap.Error(err))
		}
		defer db.Close()
		audit = db
		logger.Info("lookup audit trail enabled")
	}

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	aud := auditor.New(audit, cfg.AuditBuffer, collector, logger)
	auditDone := make(chan struct{})
	go func() {
		aud.Run(ctx)
		close(auditDone)
	}()

	svc := lookup.New(
		classifier.New(backend),
		profile.New(backend),
		aud,
		collector,
		logger,
	)

	srv := httpadapter.New(svc, audit, cfg.StaticDir, logger)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("listening", zap.String("addr", cfg.ListenAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
		// Stop the auditor and wait for it to flush buffered events.
		cancel()
		<-auditDone
	case err := <-errCh:
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "development" {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}
