package faq

import "context"

// Store keeps query analytics. It never holds knowledge base data.
type Store interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
