// @title         Scanweb API
// @version       0.1.0
// @description   Trigger scan jobs and report scanner status

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scanweb/internal/modkit/httpkit"
	"scanweb/internal/platform/config"
	"scanweb/internal/platform/logger"
	phttp "scanweb/internal/platform/net/http"

	"scanweb/internal/services/api"
)

func main() {
	// .env first so the logger and config see it; real env wins
	dotErr := config.LoadDotEnv()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if dotErr != nil {
		l.Panic().Err(dotErr).Msg("failed to load .env")
	}

	// scanner settings are unprefixed (ROOT_PATH, MODES, ...); HTTP lives under CORE_API_*
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Stack: httpkit.StackOptions{
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
