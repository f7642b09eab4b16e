// Package time contains clock and formatting helpers
package time

import (
	"time"

	"github.com/lestrrat-go/strftime"
)

// Clock returns the current time; swap it in tests
type Clock func() time.Time

// System is the wall clock
var System Clock = time.Now

// Format renders t with a strftime pattern such as "%Y-%m-%d-%H-%M-%S"
func Format(pattern string, t time.Time) (string, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return "", err
	}
	return f.FormatString(t), nil
}

// Stamp formats the clock's current time and falls back to RFC3339-ish digits when the pattern is broken
func (c Clock) Stamp(pattern string) string {
	if c == nil {
		c = System
	}
	now := c()
	if s, err := Format(pattern, now); err == nil && s != "" {
		return s
	}
	return now.Format("2006-01-02-15-04-05")
}
