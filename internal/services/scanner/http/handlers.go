// Package http provides the JSON transport for the scanner service
package http

import (
	stdhttp "net/http"
	"strings"

	"scanweb/internal/modkit/httpkit"
	"scanweb/internal/services/scanner/domain"
)

// Register mounts scanner endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/status", h.status)
	httpkit.Get(r, "/options", h.options)
	httpkit.PostJSON(r, "/jobs", h.submit)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /scanner/status Scanner scannerStatus
// @Summary Probe attached scanners and the Paperless consume directory
// @Tags Scanner
// @Produce json
// @Success 200 {object} domain.StatusReport "ok"
// @Router /scanner/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context()), nil
}

// swagger:route GET /scanner/options Scanner scannerOptions
// @Summary Configured modes, sources and resolutions
// @Tags Scanner
// @Produce json
// @Success 200 {object} domain.Options "ok"
// @Router /scanner/options [get]
func (h *handlers) options(_ *stdhttp.Request) (any, error) {
	return h.svc.Options(), nil
}

// swagger:route POST /scanner/jobs Scanner scannerSubmit
// @Summary Submit a scan job
// @Tags Scanner
// @Accept json
// @Produce json
// @Param payload body domain.JobInput true "Job"
// @Success 201 {object} domain.Submission "created"
// @Router /scanner/jobs [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.JobInput) (any, error) {
	req := in.Request()
	if strings.TrimSpace(req.Date) == "" {
		req.Date = h.svc.Options().DefaultDate
	}
	sub, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		return nil, h.svc.Public(err)
	}
	return httpkit.Created(sub), nil
}
