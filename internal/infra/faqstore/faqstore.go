// Package faqstore holds the trending-question stores behind faq.Store.
package faqstore

import "time"

const (
	// DefaultMaxQueries caps how many distinct questions a store tracks.
	DefaultMaxQueries = 1000
	// defaultTopLimit applies when TopQueries is called without a limit.
	defaultTopLimit = 10
	// displayTTL bounds how long Valkey keeps the display form of a question.
	displayTTL = 30 * 24 * time.Hour
)

func topLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	return limit
}
