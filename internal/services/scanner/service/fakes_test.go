package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"scanweb/internal/services/scanner/domain"
)

type fakeProber struct {
	out   string
	err   error
	delay time.Duration
	calls int
	mu    sync.Mutex
}

func (f *fakeProber) ListDevices(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.out, f.err
}

type launch struct {
	job domain.ScanJob
	env []string
}

type fakeLauncher struct {
	mu       sync.Mutex
	launches []launch
	err      error
}

func (f *fakeLauncher) Launch(_ context.Context, job domain.ScanJob, env []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.launches = append(f.launches, launch{job: job, env: env})
	return nil
}

func statOK(string) (os.FileInfo, error)      { return nil, nil }
func statMissing(string) (os.FileInfo, error) { return nil, fs.ErrNotExist }

var errBoom = errors.New("fork/exec /bin/bash: resource temporarily unavailable")

func settings() domain.Settings {
	return domain.Settings{
		Deployment:   domain.Production,
		BasePath:     "/",
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

func fixedClock() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

func newSvc(cfg domain.Settings, p *fakeProber, l *fakeLauncher, opts ...Option) *Svc {
	base := []Option{
		WithStat(statOK),
		WithEnviron(func() []string { return []string{"PATH=/usr/bin", "MODE=Gray", "HOME=/root"} }),
		WithClock(fixedClock),
		WithIDs(func() string { return "job-1" }),
	}
	return New(cfg, p, l, append(base, opts...)...)
}
