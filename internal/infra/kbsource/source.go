package kbsource

import (
	"context"
	"log/slog"
	"os"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
)

// CodeSourceError marks a knowledge base that could not be fetched or parsed.
const CodeSourceError = "kb_source_error"

// Source loads a knowledge base once at startup.
type Source interface {
	Load(ctx context.Context) (*faq.KnowledgeBase, error)
}

// Builtin serves the compiled-in catalogue.
type Builtin struct{}

// Load implements Source.
func (Builtin) Load(context.Context) (*faq.KnowledgeBase, error) {
	return faq.NewKnowledgeBase(faq.DefaultEntries(), faq.DefaultMenu())
}

// File reads a YAML document from the local filesystem.
type File struct {
	Path string
}

// Load implements Source.
func (f File) Load(context.Context) (*faq.KnowledgeBase, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, sourceError("open knowledge base file", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Load resolves the configured source and loads the knowledge base from it.
func Load(ctx context.Context, cfg config.KnowledgeBaseConfig, logger *slog.Logger) (*faq.KnowledgeBase, error) {
	logger = logger.With("component", "kbsource", "source", cfg.Source)
	src, closeFn, err := open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	kb, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("knowledge base loaded", "entries", kb.Len(), "menu_items", len(kb.Menu()))
	return kb, nil
}

func open(ctx context.Context, cfg config.KnowledgeBaseConfig, logger *slog.Logger) (Source, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case config.SourceFile:
		return File{Path: cfg.Path}, noop, nil
	case config.SourceS3:
		src, err := NewObjectSource(cfg.S3, logger)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	case config.SourcePostgres:
		src, err := NewPostgresSource(ctx, cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	default:
		return Builtin{}, noop, nil
	}
}

func sourceError(message string, err error) error {
	return apperrors.Wrap(CodeSourceError, message, err)
}
