package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
	"github.com/yanqian/ccs-faqbot/internal/infra/faqstore"
	"github.com/yanqian/ccs-faqbot/internal/infra/kbsource"
	"github.com/yanqian/ccs-faqbot/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// session holds what every subcommand needs once the global flags are parsed.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	kb     *faq.KnowledgeBase
	svc    faq.Service
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	s := &session{}
	return &cli.App{
		Name:   "faqctl",
		Usage:  "Query and validate the CCS FAQ knowledge base from the terminal",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: s.setup,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single question",
				ArgsUsage: "<question...>",
				Action:    s.ask,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print the matched entry, stage and score",
					},
				},
			},
			{
				Name:   "menu",
				Usage:  "Print the topic menu",
				Action: s.menu,
			},
			{
				Name:   "validate",
				Usage:  "Load the configured knowledge base source and report its size",
				Action: s.validate,
			},
			{
				Name:   "export",
				Usage:  "Write the loaded knowledge base as YAML",
				Action: s.export,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "File to write instead of stdout",
					},
				},
			},
			{
				Name:   "repl",
				Usage:  "Chat interactively until 'sair'",
				Action: s.repl,
			},
		},
	}
}

func (s *session) setup(c *cli.Context) error {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logger.NewWithLevel(os.Stderr, c.String("log-level"))

	kb, err := kbsource.Load(c.Context, cfg.FAQ.KnowledgeBase, s.logger)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}
	s.kb = kb
	s.svc = faq.NewService(faq.Config{
		SimilarityThreshold: cfg.FAQ.SimilarityThreshold,
		SimilarityAlgorithm: cfg.FAQ.SimilarityAlgorithm,
	}, kb, faqstore.NewMemoryStore(), s.logger)
	return nil
}

func (s *session) ask(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return errors.New("ask requires a question")
	}
	resp, err := s.svc.Answer(c.Context, faq.Request{Message: question})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, resp.Answer)
	if c.Bool("verbose") {
		fmt.Fprintf(c.App.Writer, "kind=%s entry=%s stage=%s score=%.3f\n", resp.Kind, resp.EntryID, resp.Stage, resp.Score)
	}
	return nil
}

func (s *session) menu(c *cli.Context) error {
	fmt.Fprint(c.App.Writer, s.svc.Menu(c.Context).Text)
	return nil
}

func (s *session) validate(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "knowledge base ok: source=%s entries=%d menu_items=%d\n",
		s.cfg.FAQ.KnowledgeBase.Source, s.kb.Len(), len(s.kb.Menu()))
	return nil
}

func (s *session) export(c *cli.Context) error {
	path := c.String("output")
	if path == "" {
		return kbsource.Encode(c.App.Writer, s.kb)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := kbsource.Encode(f, s.kb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *session) repl(c *cli.Context) error {
	return runREPL(c.Context, s.svc, c.App.Reader, c.App.Writer)
}

func runREPL(ctx context.Context, svc faq.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Digite sua pergunta ('menu' para tópicos, 'sair' para encerrar).")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Você: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		resp, err := svc.Answer(ctx, faq.Request{Message: scanner.Text()})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Bot: %s\n", resp.Answer)
		if resp.Kind == faq.KindFarewell {
			return nil
		}
	}
}
