// Package service implements the status reporter and job submitter
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scanweb/internal/core/sanitize"
	perr "scanweb/internal/platform/errors"
	"scanweb/internal/platform/logger"
	"scanweb/internal/platform/proc"
	ptime "scanweb/internal/platform/time"
	"scanweb/internal/services/scanner/domain"

	"github.com/google/uuid"
)

// Service defines the scanner service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the scanner service. It holds no mutable state and is safe for concurrent use
type Svc struct {
	cfg    domain.Settings
	prober domain.Prober
	launch domain.Launcher

	stat    func(string) (os.FileInfo, error)
	environ func() []string
	clock   ptime.Clock
	newID   func() string
}

// Option tweaks collaborators that default to the real OS
type Option func(*Svc)

// WithClock sets the clock used for the default date
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithEnviron sets the base environment inherited by scan jobs
func WithEnviron(fn func() []string) Option { return func(s *Svc) { s.environ = fn } }

// WithStat sets the function used to check the intake directory
func WithStat(fn func(string) (os.FileInfo, error)) Option { return func(s *Svc) { s.stat = fn } }

// WithIDs sets the job id generator
func WithIDs(fn func() string) Option { return func(s *Svc) { s.newID = fn } }

// New constructs a scanner service
func New(cfg domain.Settings, prober domain.Prober, launch domain.Launcher, opts ...Option) *Svc {
	if prober == nil {
		panic("scanner.Service requires a non nil Prober")
	}
	if launch == nil {
		panic("scanner.Service requires a non nil Launcher")
	}
	if cfg.ProbeTimeout <= 0 || cfg.ProbeTimeout > domain.MaxProbeTimeout {
		cfg.ProbeTimeout = domain.MaxProbeTimeout
	}
	s := &Svc{
		cfg:     cfg,
		prober:  prober,
		launch:  launch,
		stat:    os.Stat,
		environ: os.Environ,
		clock:   ptime.System,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Settings returns the immutable configuration
func (s *Svc) Settings() domain.Settings { return s.cfg }

// Options returns the configured choices and a fresh default date
func (s *Svc) Options() domain.Options {
	return domain.Options{
		Modes:       s.cfg.Modes,
		Sources:     s.cfg.Sources,
		Resolutions: s.cfg.Resolutions,
		DefaultDate: s.DefaultDate(),
	}
}

// DefaultDate renders the current time with the configured date format
func (s *Svc) DefaultDate() string { return s.clock.Stamp(s.cfg.DateFormat) }

// Status probes scanners and the intake directory. It never fails: probe
// problems are reported in the returned value
func (s *Svc) Status(ctx context.Context) (rep domain.StatusReport) {
	rep = domain.StatusReport{
		Scanners:         []string{},
		PaperlessConsume: s.consumeState(),
	}

	out, err := s.probe(ctx)
	if err != nil {
		msg := err.Error()
		if strings.TrimSpace(msg) == "" {
			msg = "scanner probe failed"
		}
		logger.C(ctx).Warn().Err(err).Msg("scanner probe failed")
		rep.Status = domain.StatusError
		rep.Message = msg
		return rep
	}

	rep.Status = domain.StatusOK
	rep.Scanners = ParseScanners(out)
	rep.Count = len(rep.Scanners)
	return rep
}

func (s *Svc) probe(ctx context.Context) (out string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()
	defer func() {
		if v := recover(); v != nil {
			err = perr.PanicErrf("scanner probe panicked: %v", v)
		}
	}()
	return s.prober.ListDevices(ctx)
}

func (s *Svc) consumeState() string {
	if s.cfg.ConsumeDir == "" {
		return domain.ConsumeUnavailable
	}
	if _, err := s.stat(s.cfg.ConsumeDir); err != nil {
		return domain.ConsumeUnavailable
	}
	return domain.ConsumeConnected
}

// ParseScanners keeps lines of a scanimage -L listing that mention both
// "device" and "scanner", trimmed. The result is never nil
func ParseScanners(out string) []string {
	scanners := []string{}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "device") && strings.Contains(line, "scanner") {
			scanners = append(scanners, strings.TrimSpace(line))
		}
	}
	return scanners
}

// Build validates req into a ScanJob without side effects
func (s *Svc) Build(req domain.ScanRequest) (domain.ScanJob, error) {
	date, err := sanitize.Token("date", req.Date)
	if err != nil {
		return domain.ScanJob{}, err
	}
	name, err := sanitize.Token("name", req.Name)
	if err != nil {
		return domain.ScanJob{}, err
	}
	if !s.cfg.HasMode(req.Mode) {
		return domain.ScanJob{}, perr.WithField(
			perr.InvalidArgf("mode %q is not one of %s", req.Mode, strings.Join(s.cfg.Modes, ", ")), "mode")
	}
	dpi, err := strconv.Atoi(strings.TrimSpace(req.Resolution))
	if err != nil || dpi <= 0 {
		return domain.ScanJob{}, perr.WithField(
			perr.Validationf("resolution %q is not a positive whole number", req.Resolution), "resolution")
	}
	if !s.cfg.HasSource(req.Source) {
		return domain.ScanJob{}, perr.WithField(
			perr.InvalidArgf("source %q is not one of %s", req.Source, strings.Join(s.cfg.Sources, ", ")), "source")
	}
	tags, err := sanitize.Text("tags", req.Tags)
	if err != nil {
		return domain.ScanJob{}, err
	}
	corr, err := sanitize.Text("correspondent", req.Correspondent)
	if err != nil {
		return domain.ScanJob{}, err
	}

	job := domain.ScanJob{
		ID:              s.newID(),
		Filename:        date + "-" + name,
		Mode:            req.Mode,
		Resolution:      fmt.Sprintf("%ddpi", dpi),
		Source:          req.Source,
		SendToPaperless: req.SendToPaperless,
		Tags:            tags,
		Correspondent:   corr,
	}
	if s.cfg.JobLogDir != "" {
		job.LogPath = filepath.Join(s.cfg.JobLogDir, job.Filename+".log")
	}
	return job, nil
}

// Submit validates req and launches the scan script without waiting for it
func (s *Svc) Submit(ctx context.Context, req domain.ScanRequest) (domain.Submission, error) {
	job, err := s.Build(req)
	if err != nil {
		logger.C(ctx).Info().Err(err).Msg("scan request rejected")
		return domain.Submission{}, err
	}

	ctx = logger.WithJob(ctx, job.ID)
	log := logger.C(ctx)
	env := proc.MergeEnv(s.environ(), job.Env())

	if err := s.launch.Launch(ctx, job, env); err != nil {
		log.Error().Err(err).Str("filename", job.Filename).Msg("scan job launch failed")
		if perr.CodeOf(err) == perr.ErrorCodeUnknown {
			err = perr.Wrap(err, perr.ErrorCodeUnknown, "launch scan job")
		}
		return domain.Submission{}, err
	}

	log.Info().
		Str("filename", job.Filename).
		Str("mode", job.Mode).
		Str("resolution", job.Resolution).
		Str("source", job.Source).
		Bool("paperless", job.SendToPaperless).
		Msg("scan job launched")

	msg := domain.MsgLocalOnly
	if job.SendToPaperless {
		msg = domain.MsgForwarded
	}
	return domain.Submission{
		JobID:           job.ID,
		Filename:        job.Filename,
		SendToPaperless: job.SendToPaperless,
		Message:         msg,
	}, nil
}

// Public returns err as a user may see it. Input errors pass through; other
// errors keep their code and carry the full text in development, GenericError otherwise
func (s *Svc) Public(err error) error {
	if err == nil || perr.IsInput(err) {
		return err
	}
	if s.cfg.Debug() {
		return perr.New(perr.CodeOf(err), err.Error())
	}
	return perr.New(perr.CodeOf(err), domain.GenericError)
}
