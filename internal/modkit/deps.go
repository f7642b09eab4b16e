// Package modkit provides module wiring and core deps
package modkit

import (
	"scanweb/internal/platform/config"
	"scanweb/internal/platform/logger"
)

// Deps holds core dependencies passed to modules.
// scanweb keeps no stores, so this is the logger and config view only
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}
