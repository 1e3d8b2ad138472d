package kbsource

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
	"github.com/yanqian/ccs-faqbot/internal/infra/config"
)

// Schema read by PostgresSource:
//
//	CREATE TABLE faq_entries (
//	    position INT PRIMARY KEY,
//	    id       TEXT NOT NULL UNIQUE,
//	    tags     TEXT[] NOT NULL DEFAULT '{}',
//	    patterns TEXT[] NOT NULL DEFAULT '{}',
//	    answer   TEXT NOT NULL
//	);
//	CREATE TABLE faq_menu (
//	    position    INT PRIMARY KEY,
//	    title       TEXT NOT NULL,
//	    description TEXT NOT NULL
//	);
const (
	selectEntries = `
		SELECT id, tags, patterns, answer
		FROM faq_entries
		ORDER BY position
	`
	selectMenu = `
		SELECT title, description
		FROM faq_menu
		ORDER BY position
	`
)

// PostgresSource reads the knowledge base from the faq_entries and faq_menu tables.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource opens a small pool and checks connectivity.
func NewPostgresSource(ctx context.Context, cfg config.PostgresConfig) (*PostgresSource, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, sourceError("invalid postgres dsn", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, sourceError("initialize postgres pool", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, sourceError("postgres ping failed", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) (*faq.KnowledgeBase, error) {
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, sourceError("load faq_entries", err)
	}
	menu, err := s.loadMenu(ctx)
	if err != nil {
		return nil, sourceError("load faq_menu", err)
	}
	return faq.NewKnowledgeBase(entries, menu)
}

// Close releases the pool; the source is only needed during startup.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

func (s *PostgresSource) loadEntries(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.pool.Query(ctx, selectEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []faq.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresSource) loadMenu(ctx context.Context) ([]faq.MenuItem, error) {
	rows, err := s.pool.Query(ctx, selectMenu)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var menu []faq.MenuItem
	for rows.Next() {
		var item faq.MenuItem
		if err := rows.Scan(&item.Title, &item.Description); err != nil {
			return nil, err
		}
		menu = append(menu, item)
	}
	return menu, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (faq.Entry, error) {
	var entry faq.Entry
	if err := row.Scan(&entry.ID, &entry.Tags, &entry.Patterns, &entry.Answer); err != nil {
		return faq.Entry{}, err
	}
	return entry, nil
}
