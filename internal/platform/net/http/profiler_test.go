package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scanweb/internal/platform/config"
	phttp "scanweb/internal/platform/net/http"
)

// mounts the profiler the way cmd/scanweb does: CORE_API_PROFILER gates /debug
func profilerRouter(t *testing.T, flag string) phttp.Router {
	t.Helper()
	t.Setenv("CORE_API_PROFILER", flag)
	apiCfg := config.New().Prefix("CORE_API_")
	r := phttp.NewServer(apiCfg).Router()
	phttp.MountProfiler(r, "/debug", apiCfg.MayBool("PROFILER", false))
	return r
}

func TestMountProfiler_FollowsFlag(t *testing.T) {
	cases := []struct {
		flag string
		want int
	}{
		{"true", http.StatusOK},
		{"on", http.StatusOK},
		{"false", http.StatusNotFound},
		{"", http.StatusNotFound},
	}
	for _, tc := range cases {
		r := profilerRouter(t, tc.flag)
		for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
			if rec.Code != tc.want {
				t.Fatalf("CORE_API_PROFILER=%q GET %s = %d, want %d", tc.flag, p, rec.Code, tc.want)
			}
		}
	}
}

func TestMountProfiler_PrefixIsNormalized(t *testing.T) {
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "debug/", true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /debug/pprof/ = %d", rec.Code)
	}

	// the bare prefix belongs to the profiler; it never reaches other routes
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug", nil))
	if rec.Code == http.StatusOK || rec.Code >= http.StatusInternalServerError {
		t.Fatalf("GET /debug = %d", rec.Code)
	}
}
