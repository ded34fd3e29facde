// Package biztime centralizes wall-clock access. All storage and transport use UTC.
package biztime

import "time"

// Clock abstracts the wall clock so domain timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the UTC wall clock.
func SystemClock() Clock { return utcClock{} }

// FixedClock always returns t.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatMetadataTime formats t for JSON metadata fields.
func FormatMetadataTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
