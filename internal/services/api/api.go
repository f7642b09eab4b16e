// Package api mounts the scan front end, the JSON API and its docs onto the server router
package api

import (
	"context"
	"os"

	"scanweb/internal/adapters/sane"
	"scanweb/internal/modkit"
	"scanweb/internal/modkit/httpkit"
	"scanweb/internal/modkit/module"
	"scanweb/internal/modkit/swaggerkit"
	"scanweb/internal/platform/config"
	perr "scanweb/internal/platform/errors"
	"scanweb/internal/platform/logger"
	phttp "scanweb/internal/platform/net/http"
	"scanweb/internal/platform/net/middleware"
	"scanweb/internal/platform/proc"
	"scanweb/internal/services/scanner/domain"

	metahttp "scanweb/internal/services/api/meta/http"
	metamod "scanweb/internal/services/api/meta/module"
	scannermod "scanweb/internal/services/scanner/module"
	webmod "scanweb/internal/services/web/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
	// Adapters replaces the scanimage prober and script launcher when set
	Adapters scannermod.Adapters
}

// Mount mounts every module onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	deps := modkit.Deps{Cfg: opt.Config, Log: *log}

	// load balancer ping; answers before any routing or logging
	r.Use(middleware.Heartbeat("/healthz"))

	// the scanner module owns the service; the web front end and readiness consume it
	scanner := scannermod.New(deps, modkit.WithPorts(opt.Adapters))
	svc := module.MustPortsOf[domain.ServicePort](scanner)

	web := webmod.New(deps,
		modkit.WithPorts[domain.ServicePort](svc),
		modkit.WithMiddlewares(httpkit.CommonStack(opt.Stack)...),
	)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Checks: readiness(svc.Settings())}))

	api := []module.Module{meta, scanner}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(v1 httpkit.Router) {
		for _, m := range api {
			m.MountRoutes(v1)
		}
	})
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	web.MountRoutes(r)
}

// readiness checks that the probe tool is on PATH and the consume directory exists
func readiness(s domain.Settings) []metahttp.Check {
	program := sane.NewProber(s.ProbeCmd).Program()
	return []metahttp.Check{
		{Name: "probe", Ping: metahttp.PingFunc(func(context.Context) error {
			if !proc.Available(program) {
				return perr.Unavailablef("%q not found on PATH", program)
			}
			return nil
		})},
		{Name: "consume_dir", Ping: metahttp.PingFunc(func(context.Context) error {
			fi, err := os.Stat(s.ConsumeDir)
			if err != nil {
				return perr.Wrap(err, perr.ErrorCodeUnavailable, "consume dir")
			}
			if !fi.IsDir() {
				return perr.Unavailablef("%s is not a directory", s.ConsumeDir)
			}
			return nil
		})},
	}
}
