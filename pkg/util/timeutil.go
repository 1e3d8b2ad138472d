package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SinceMillis returns the elapsed milliseconds between start and now.
func SinceMillis(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return now.Sub(start).Milliseconds()
}
