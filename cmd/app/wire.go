//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ccs-faqbot/internal/bootstrap"
	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
	httpiface "github.com/yanqian/ccs-faqbot/internal/interface/http"
	"github.com/yanqian/ccs-faqbot/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideKnowledgeBase,
		provideFAQStore,
		faq.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
