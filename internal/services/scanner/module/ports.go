package module

import (
	"scanweb/internal/services/scanner/domain"
)

// Ports is what other modules consume from the scanner module
type Ports struct {
	Service domain.ServicePort
}

// Adapters overrides the OS collaborators; inject with modkit.WithPorts
type Adapters struct {
	Prober   domain.Prober
	Launcher domain.Launcher
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
