package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "scanweb/internal/platform/errors"
	"scanweb/internal/platform/logger"
	pnet "scanweb/internal/platform/net"
	phttp "scanweb/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope and logs the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Str("request_id", pnet.RequestID(r.Context())).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
