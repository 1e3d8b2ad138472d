package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
)

func TestAppRunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}}
	app := NewApp(cfg, faq.DefaultKnowledgeBase(), newTestLogger(), &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestAppRunReportsListenError(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:-1", ShutdownTimeout: time.Second}}
	app := NewApp(cfg, faq.DefaultKnowledgeBase(), newTestLogger(), &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "http server")
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
