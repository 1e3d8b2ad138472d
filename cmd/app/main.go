package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
	"github.com/yanqian/ccs-faqbot/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		// the wired logger may not exist yet when startup fails
		logger.New().Error("faqbot stopped", "code", apperrors.CodeOf(err), "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

