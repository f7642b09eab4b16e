// Package raw reads the handful of LOG_* settings the logger needs before it exists.
// It must not import the logger or config packages
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed env view, e.g. New().Prefix("LOG_")
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix appends p to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the trimmed value or def when blank
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetLower is Get folded to lower case, for enum-like values such as LOG_LEVEL=DEBUG
func (c Conf) GetLower(key, def string) string {
	return strings.ToLower(c.Get(key, def))
}

// GetBool accepts 1/true/yes/on and 0/false/no/off in any case; anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// GetInt returns a non-negative integer or def when blank, malformed or negative
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
