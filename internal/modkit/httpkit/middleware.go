package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"scanweb/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins enables CORS for the listed origins; empty disables it
	CORSOrigins []string
	// SlowRequest marks access log lines as warn past this duration
	SlowRequest time.Duration
}

// CommonStack returns the baseline per scope middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: o.SlowRequest,
			Skip: []string{"/api/v1/meta/health"},
		}),
		middleware.NoCache(),
	}
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return append(stack,
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(30*time.Second),
	)
}
