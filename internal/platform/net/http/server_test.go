package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scanweb/internal/platform/config"
	phttp "scanweb/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func jsonReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNewServer_DefaultsAndRouting(t *testing.T) {
	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected option hook to run")
	}
	if srv.Addr() != ":8080" {
		t.Fatalf("default addr = %q", srv.Addr())
	}

	r := srv.Router()
	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Mark", "1")
			next.ServeHTTP(w, req)
		})
	}
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	r.Route("/scan", func(sub phttp.Router) {
		sub.Post("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		sub.With(mark).Get("/status", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })
	})
	r.Group(func(g phttp.Router) {
		g.Head("/head", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})

	cases := []struct {
		method, path string
		status       int
		mark         bool
	}{
		{"GET", "/ping", http.StatusOK, false},
		{"POST", "/scan/", http.StatusAccepted, false},
		{"GET", "/scan/status", http.StatusOK, true},
		{"HEAD", "/head", http.StatusNoContent, false},
		{"GET", "/missing", http.StatusNotFound, false},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.status)
		}
		if tc.mark != (rec.Header().Get("X-Mark") == "1") {
			t.Fatalf("%s %s: With() middleware mismatch", tc.method, tc.path)
		}
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	t.Setenv("SRVRUN_API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("SRVRUN_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

