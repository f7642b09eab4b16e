// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "scanweb/internal/modkit"
	"scanweb/internal/modkit/httpkit"
	str "scanweb/internal/platform/strings"
	ptime "scanweb/internal/platform/time"

	"scanweb/internal/core/version"
	metahttp "scanweb/internal/services/api/meta/http"
)

// Ports carries readiness checks owned by other modules
type Ports struct {
	Checks []metahttp.Check
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	checks    []metahttp.Check
	startedAt time.Time
}

// New constructs a meta module; readiness checks are injected with modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("meta", append([]modkit.Option{modkit.WithPrefix("/meta")}, opts...)...)
	p, _ := modkit.PortsAs[Ports](b)

	return &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		checks:    p.Checks,
		startedAt: ptime.System(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Checks:      m.checks,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return Ports{Checks: m.checks} }
