// Package app wires configuration, storage, services, and the HTTP server
// into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/sisregip/sisregip-backend/internal/adapter/postgres"
	auditrepo "github.com/sisregip/sisregip-backend/internal/adapter/postgres/audit"
	identityrepo "github.com/sisregip/sisregip-backend/internal/adapter/postgres/identity"
	protocolrepo "github.com/sisregip/sisregip-backend/internal/adapter/postgres/protocol"
	"github.com/sisregip/sisregip-backend/internal/config"
	"github.com/sisregip/sisregip-backend/internal/pdfmerge"
	auditsvc "github.com/sisregip/sisregip-backend/internal/service/audit"
	"github.com/sisregip/sisregip-backend/internal/service/registry"
	"github.com/sisregip/sisregip-backend/internal/service/report"
	"github.com/sisregip/sisregip-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the services, and serves HTTP until the context is
// cancelled. Shutdown drains in-flight requests within the configured
// timeout before closing the pool.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)

	auditService := auditsvc.NewRecorder(logger, auditrepo.New(pool))
	registryService := registry.NewService(logger,
		protocolrepo.New(pool),
		identityrepo.New(pool),
		auditService,
		tx,
	)
	reportService := report.NewService(logger, protocolrepo.New(pool), auditService)
	merger := pdfmerge.NewMerger(logger,
		pdfmerge.WithBlankThreshold(cfg.Merge.BlankThreshold),
		pdfmerge.WithOutputName(cfg.Merge.OutputName),
	)

	router := rest.NewRouter(logger, cfg.CORS, rest.Handlers{
		Protocols: rest.NewProtocolHandler(logger, registryService),
		Reports:   rest.NewReportHandler(logger, reportService),
		PDFs:      rest.NewPDFHandler(logger, merger),
		Audit:     rest.NewAuditHandler(logger, auditService),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
