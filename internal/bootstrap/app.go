package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
)

// App owns the chat API server from listen to graceful shutdown.
type App struct {
	cfg    *config.Config
	kb     *faq.KnowledgeBase
	logger *slog.Logger
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, kb *faq.KnowledgeBase, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, kb: kb, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most http.shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("faqbot listening",
			"address", a.cfg.HTTP.Address,
			"kb_source", a.cfg.FAQ.KnowledgeBase.Source,
			"entries", a.kb.Len(),
		)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received", "timeout", a.cfg.HTTP.ShutdownTimeout)
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
