// Package module wires the scanner service into the API using modkit
package module

import (
	"net/http"

	"scanweb/internal/adapters/sane"
	"scanweb/internal/adapters/scanscript"
	modkit "scanweb/internal/modkit"
	"scanweb/internal/modkit/httpkit"
	str "scanweb/internal/platform/strings"
	scannerhttp "scanweb/internal/services/scanner/http"
	scannersvc "scanweb/internal/services/scanner/service"
)

// Module implements the scanner module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	svc *scannersvc.Svc
}

// New constructs the scanner module. Settings come from deps.Cfg; the real
// scanimage prober and script launcher are used unless Adapters are injected
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("scanner", append([]modkit.Option{modkit.WithPrefix("/scanner")}, opts...)...)

	settings := FromConfig(deps.Cfg)
	ad, _ := modkit.PortsAs[Adapters](b)
	if ad.Prober == nil {
		ad.Prober = sane.NewProber(settings.ProbeCmd)
	}
	if ad.Launcher == nil {
		ad.Launcher = scanscript.NewLauncher(settings.Shell, settings.Script)
	}

	svc := scannersvc.New(settings, ad.Prober, ad.Launcher)
	deps.Log.Info().
		Str("deployment", string(settings.Deployment)).
		Str("base_path", settings.BasePath).
		Str("consume_dir", settings.ConsumeDir).
		Strs("probe", settings.ProbeCmd).
		Dur("probe_timeout", settings.ProbeTimeout).
		Msg("scanner module ready")

	return &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Service: svc},
		svc:    svc,
	}
}

// MountRoutes mounts the scanner API under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		scannerhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
