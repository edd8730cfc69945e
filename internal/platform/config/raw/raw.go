// Package raw is a logging-free view over environment variables used by
// bootstrap code (the logger itself) that cannot depend on the full config
// package without a cycle
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefix-scoped env reader with defaults-only getters
type Conf struct{ prefix string }

// New returns a root Conf
func New() Conf { return Conf{} }

// Prefix returns a child view with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value or def when missing/empty
func (c Conf) Get(key, def string) string {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	if v == "" {
		return def
	}
	return v
}

// GetBool returns the parsed bool or def when missing or invalid
func (c Conf) GetBool(key string, def bool) bool {
	s := c.Get(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

// GetInt returns the parsed int or def when missing or invalid
func (c Conf) GetInt(key string, def int) int {
	s := c.Get(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
