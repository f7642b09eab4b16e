// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "scanweb/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit.
// Sibling package so a module can export its own ports type without import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
