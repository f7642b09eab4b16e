package http

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	phttp "scanweb/internal/platform/net/http"
	kit "scanweb/internal/platform/testkit"
	"scanweb/internal/services/scanner/domain"
	"scanweb/internal/services/scanner/service"

	"github.com/go-chi/chi/v5"
)

type prober struct {
	out string
	err error
}

func (p prober) ListDevices(context.Context) (string, error) { return p.out, p.err }

type launcher struct {
	mu   sync.Mutex
	envs [][]string
	err  error
}

func (l *launcher) Launch(_ context.Context, _ domain.ScanJob, env []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.envs = append(l.envs, env)
	return nil
}

const listing = "device `epjitsu:libusb:001:004' is a FUJITSU ScanSnap S1500 scanner\n"

func settings(base string) domain.Settings {
	return domain.Settings{
		Deployment:   domain.Production,
		BasePath:     base,
		Sources:      []string{"ADF Front", "ADF Back", "ADF Duplex"},
		Modes:        []string{"Lineart", "Gray", "Color"},
		Resolutions:  []int{150, 300, 600},
		DateFormat:   "%Y-%m-%d-%H-%M-%S",
		ConsumeDir:   "/mnt/consume",
		Shell:        "/bin/bash",
		Script:       "/app/scan_adf.sh",
		ProbeCmd:     []string{"scanimage", "-L"},
		ProbeTimeout: time.Second,
	}
}

func newServer(t *testing.T, cfg domain.Settings, p prober, l *launcher, stat func(string) (os.FileInfo, error)) stdhttp.Handler {
	t.Helper()
	svc := service.New(cfg, p, l,
		service.WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }),
		service.WithEnviron(func() []string { return []string{"PATH=/usr/bin", "MODE=Gray"} }),
		service.WithStat(stat),
		service.WithIDs(func() string { return "job-1" }),
	)
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	Register(r, svc, cfg.BasePath)
	if cfg.BasePath != "/" {
		RegisterStatus(r, svc)
	}
	return m
}

func statOK(string) (os.FileInfo, error)      { return nil, nil }
func statMissing(string) (os.FileInfo, error) { return nil, fs.ErrNotExist }

func get(h stdhttp.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rr
}

func post(h stdhttp.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func reference() url.Values {
	return url.Values{
		"date":       {"2024-01-01-00-00-00"},
		"name":       {"test"},
		"mode":       {"Color"},
		"resolution": {"150"},
		"source":     {"ADF Front"},
	}
}

func TestForm_RendersDefaultsAndStatus(t *testing.T) {
	h := newServer(t, settings("/"), prober{out: listing}, &launcher{}, statOK)
	rr := get(h, "/")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	body := rr.Body.String()
	kit.MustContain(t, body, `value="2024-01-01-00-00-00"`)
	kit.MustContain(t, body, "Scanners found: 1")
	kit.MustContain(t, body, ConsumeOK)
	kit.MustContain(t, body, `<option value="ADF Duplex">`)
	kit.MustContain(t, body, `<option value="600">`)
	kit.MustContain(t, body, `action="/"`)
}

func TestForm_ProbeFailureAndMissingConsumeDir(t *testing.T) {
	h := newServer(t, settings("/"), prober{err: errors.New("scanimage: not found")}, &launcher{}, statMissing)
	body := get(h, "/").Body.String()
	kit.MustContain(t, body, ScannerFail)
	kit.MustContain(t, body, ConsumeDown)
}

func TestSubmit_ReferenceRequest(t *testing.T) {
	l := &launcher{}
	h := newServer(t, settings("/"), prober{out: listing}, l, statOK)

	rr := post(h, "/", reference())
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	kit.MustContain(t, rr.Body.String(), domain.MsgLocalOnly)

	if len(l.envs) != 1 {
		t.Fatalf("launches = %d", len(l.envs))
	}
	env := l.envs[0]
	for _, kv := range []string{
		"FILENAME=2024-01-01-00-00-00-test",
		"MODE=Color",
		"RESOLUTION=150dpi",
		"SOURCE=ADF Front",
		"SEND_TO_PAPERLESS=false",
		"PATH=/usr/bin",
	} {
		if !slices.Contains(env, kv) {
			t.Fatalf("env missing %q: %v", kv, env)
		}
	}
	if slices.Contains(env, "MODE=Gray") {
		t.Fatal("inherited MODE must be overridden")
	}
}

func TestSubmit_ForwardToPaperless(t *testing.T) {
	l := &launcher{}
	h := newServer(t, settings("/"), prober{out: listing}, l, statOK)
	form := reference()
	form.Set("send_to_paperless", "on")
	form.Set("tags", "  inbox,tax ")

	rr := post(h, "/", form)
	kit.MustContain(t, rr.Body.String(), domain.MsgForwarded)
	if !slices.Contains(l.envs[0], "SEND_TO_PAPERLESS=true") || !slices.Contains(l.envs[0], "PAPERLESS_TAGS=inbox,tax") {
		t.Fatalf("unexpected env %v", l.envs[0])
	}
}

func TestSubmit_ResolutionWithSurroundingSpaces(t *testing.T) {
	l := &launcher{}
	h := newServer(t, settings("/"), prober{out: listing}, l, statOK)
	form := reference()
	form.Set("resolution", " 300 ")

	if rr := post(h, "/", form); rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	if len(l.envs) != 1 || !slices.Contains(l.envs[0], "RESOLUTION=300dpi") {
		t.Fatalf("unexpected launches %v", l.envs)
	}
}

func TestSubmit_InputErrorsKeepServing(t *testing.T) {
	l := &launcher{}
	h := newServer(t, settings("/"), prober{out: listing}, l, statOK)

	cases := []struct {
		name  string
		key   string
		value string
		want  int
	}{
		{"non-numeric resolution", "resolution", "abc", stdhttp.StatusBadRequest},
		{"missing name", "name", "", stdhttp.StatusBadRequest},
		{"path in name", "name", "../x", stdhttp.StatusBadRequest},
		{"unknown mode", "mode", "Sepia", stdhttp.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := reference()
			form.Set(tc.key, tc.value)
			rr := post(h, "/", form)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tc.want, rr.Body.String())
			}
			kit.MustContain(t, rr.Body.String(), `class="error"`)
		})
	}
	if len(l.envs) != 0 {
		t.Fatalf("no job may launch on input errors, got %d", len(l.envs))
	}
	if rr := get(h, "/"); rr.Code != stdhttp.StatusOK {
		t.Fatalf("server stopped serving: %d", rr.Code)
	}
}

func TestSubmit_LaunchFailureByDeployment(t *testing.T) {
	cause := errors.New("fork/exec /bin/bash: resource temporarily unavailable")

	h := newServer(t, settings("/"), prober{out: listing}, &launcher{err: cause}, statOK)
	rr := post(h, "/", reference())
	if rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), domain.GenericError)
	if strings.Contains(rr.Body.String(), "fork/exec") {
		t.Fatal("production must hide the cause")
	}

	cfg := settings("/")
	cfg.Deployment = domain.Development
	h = newServer(t, cfg, prober{out: listing}, &launcher{err: cause}, statOK)
	rr = post(h, "/", reference())
	kit.MustContain(t, rr.Body.String(), "resource temporarily unavailable")
}

func TestStatusJSON(t *testing.T) {
	h := newServer(t, settings("/"), prober{out: "no scanners were identified\n"}, &launcher{}, statMissing)
	rr := get(h, "/status")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" || got["count"].(float64) != 0 || got["paperless_consume"] != "Not available" {
		t.Fatalf("unexpected %v", got)
	}
	if s, ok := got["scanners"].([]any); !ok || len(s) != 0 {
		t.Fatalf("scanners must be an empty list: %v", got["scanners"])
	}
}

func TestBasePath(t *testing.T) {
	l := &launcher{}
	h := newServer(t, settings("/scan"), prober{out: listing}, l, statOK)

	rr := get(h, "/scan")
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("GET /scan = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `action="/scan"`)

	for _, p := range []string{"/scan/status", "/status"} {
		if rr := get(h, p); rr.Code != stdhttp.StatusOK {
			t.Fatalf("GET %s = %d", p, rr.Code)
		}
	}
	if rr := get(h, "/"); rr.Code != stdhttp.StatusNotFound {
		t.Fatalf("GET / = %d, want 404", rr.Code)
	}
	if rr := post(h, "/scan", reference()); rr.Code != stdhttp.StatusOK || len(l.envs) != 1 {
		t.Fatalf("POST /scan = %d launches=%d", rr.Code, len(l.envs))
	}
}
