// Package http serves the HTML scan form and the flat status JSON
package http

import (
	"bytes"
	"embed"
	"html/template"
	stdhttp "net/http"
	"strconv"

	"scanweb/internal/modkit/httpkit"
	perr "scanweb/internal/platform/errors"
	"scanweb/internal/platform/logger"
	phttp "scanweb/internal/platform/net/http"
	"scanweb/internal/platform/net/http/bind"
	"scanweb/internal/services/scanner/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var formTmpl = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

// Status lines shown above the form
const (
	ConsumeOK   = "✓ " + domain.ConsumeConnected
	ConsumeDown = "✗ " + domain.ConsumeUnavailable
	ScannerFail = "Scanner detection failed"
)

// page is the template model
type page struct {
	Action          string
	DefaultDate     string
	Modes           []string
	Sources         []string
	Resolutions     []int
	Message         string
	Failed          bool
	ScannerStatus   string
	PaperlessStatus string
}

type handlers struct {
	svc  domain.ServicePort
	base string
}

// Register mounts the form at base and the status JSON at base+"/status".
// base must already be normalized ("/" or "/x")
func Register(r httpkit.Router, s domain.ServicePort, base string) {
	h := &handlers{svc: s, base: base}
	if base == "/" {
		h.routes(r)
		return
	}
	r.Route(base, h.routes)
}

// RegisterStatus mounts only the flat status JSON at /status
func RegisterStatus(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	r.Get("/status", h.status)
}

func (h *handlers) routes(r httpkit.Router) {
	r.Get("/", h.form)
	r.Post("/", h.submit)
	r.Get("/status", h.status)
}

func (h *handlers) status(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.JSON(w, stdhttp.StatusOK, h.svc.Status(r.Context()))
}

func (h *handlers) form(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	h.render(w, r, stdhttp.StatusOK, "", false)
}

func (h *handlers) submit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseForm[domain.FormInput](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sub, err := h.svc.Submit(r.Context(), in.Request())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, stdhttp.StatusOK, sub.Message, false)
}

// fail renders input errors with their 4xx status; anything else is a 500
// carrying whatever the deployment allows the user to see.
// The service has already logged non-input failures
func (h *handlers) fail(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	pub := h.svc.Public(err)
	status := stdhttp.StatusInternalServerError
	if perr.IsInput(pub) {
		status = perr.HTTPStatus(pub)
	}
	msg := pub.Error()
	if e, ok := perr.As(pub); ok {
		msg = e.Message()
	}
	h.render(w, r, status, msg, true)
}

func (h *handlers) render(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, msg string, failed bool) {
	opts := h.svc.Options()
	rep := h.svc.Status(r.Context())

	p := page{
		Action:          h.svc.Settings().BasePath,
		DefaultDate:     opts.DefaultDate,
		Modes:           opts.Modes,
		Sources:         opts.Sources,
		Resolutions:     opts.Resolutions,
		Message:         msg,
		Failed:          failed,
		ScannerStatus:   ScannerFail,
		PaperlessStatus: ConsumeDown,
	}
	if rep.OK() {
		p.ScannerStatus = "Scanners found: " + strconv.Itoa(rep.Count)
	}
	if rep.PaperlessConsume == domain.ConsumeConnected {
		p.PaperlessStatus = ConsumeOK
	}

	var buf bytes.Buffer
	if err := formTmpl.Execute(&buf, p); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("render form")
		phttp.RespondError(w, r, perr.Wrap(err, perr.ErrorCodeUnknown, "render form"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
