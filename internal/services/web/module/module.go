// Package module wires the HTML scan form into the server using modkit
package module

import (
	"net/http"

	modkit "scanweb/internal/modkit"
	"scanweb/internal/modkit/httpkit"
	str "scanweb/internal/platform/strings"
	"scanweb/internal/services/scanner/domain"
	webhttp "scanweb/internal/services/web/http"
)

// Module implements the web front end module
type Module struct {
	deps modkit.Deps
	name string
	mws  []func(http.Handler) http.Handler
	svc  domain.ServicePort
}

// New constructs the web module. The scanner service must be injected with
// modkit.WithPorts[domain.ServicePort]
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("web", opts...)

	svc, ok := modkit.PortsAs[domain.ServicePort](b)
	if !ok {
		deps.Log.Panic().Str("module", b.Name).Msg("scanner service port not provided")
	}
	deps.Log.Info().Str("base_path", svc.Settings().BasePath).Msg("web module ready")

	return &Module{deps: deps, name: b.Name, mws: b.Mw, svc: svc}
}

// MountRoutes mounts the form at the configured base path. The flat status
// JSON is also served at /status so probes keep working behind any base path
func (m *Module) MountRoutes(r httpkit.Router) {
	base := m.svc.Settings().BasePath
	httpkit.MountUnder(r, "/", m.mws, func(rr httpkit.Router) {
		webhttp.Register(rr, m.svc, base)
		if base != "/" {
			webhttp.RegisterStatus(rr, m.svc)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports returns nil; the web module exposes nothing to other modules
func (m *Module) Ports() any { return nil }
