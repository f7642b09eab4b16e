// Package proc runs external programs: bounded captured runs for probes and
// detached starts for long running jobs
package proc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	perr "scanweb/internal/platform/errors"
)

// DefaultWaitDelay bounds how long Run waits for inherited pipes after the
// process is killed or exits
const DefaultWaitDelay = 500 * time.Millisecond

// Result holds captured output of a finished run
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// RunOptions configures Run
type RunOptions struct {
	WaitDelay time.Duration
	Env       []string
	Dir       string
}

var lookPath = exec.LookPath // seam

// Run executes name with args, waits for completion and captures output.
// ctx bounds the whole call: on deadline the process is killed and a Timeout error is returned.
// A missing binary is Unavailable, a non-zero exit is Unknown with stderr attached
func Run(ctx context.Context, name string, args []string, opts ...RunOptions) (Result, error) {
	o := RunOptions{WaitDelay: DefaultWaitDelay}
	if len(opts) > 0 {
		o = opts[0]
		if o.WaitDelay <= 0 {
			o.WaitDelay = DefaultWaitDelay
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = o.WaitDelay
	cmd.Env = o.Env
	cmd.Dir = o.Dir

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}

	switch {
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return res, perr.Wrapf(err, perr.ErrorCodeTimeout, "%s timed out after %s", name, res.Elapsed.Round(time.Millisecond))
	case ctx.Err() != nil:
		return res, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "%s cancelled", name)
	case isNotFound(err):
		return res, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s not available", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = exitErr.Error()
		}
		return res, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s exited with code %d: %s", name, res.ExitCode, msg)
	}
	return res, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s failed", name)
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

// Available reports whether name resolves to an executable
func Available(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// Spec describes a detached process
type Spec struct {
	Program string
	Args    []string
	// Env is the full environment; nil inherits the server's
	Env []string
	// LogPath receives stdout and stderr in append mode; empty discards them
	LogPath string
	// OnExit is called from the reaper goroutine with the Wait result
	OnExit func(err error)
}

// Handle tracks a started process
type Handle struct {
	PID  int
	done chan struct{}
	mu   sync.Mutex
	err  error
}

// Done is closed once the process has been reaped
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the Wait result once Done is closed
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Start launches the process and returns without waiting for it.
// The child gets its own process group so terminal signals aimed at the server do not reach it,
// and a goroutine reaps it so no zombie is left behind
func Start(spec Spec) (*Handle, error) {
	if strings.TrimSpace(spec.Program) == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "program is required")
	}

	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Env = spec.Env
	detach(cmd)

	var logFile *os.File
	if spec.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(spec.LogPath), 0o755); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "create log dir for %s", spec.LogPath)
		}
		f, err := os.OpenFile(spec.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open job log %s", spec.LogPath)
		}
		logFile = f
		cmd.Stdout = f
		cmd.Stderr = f
	}

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		if isNotFound(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s not available", spec.Program)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "start %s", spec.Program)
	}

	h := &Handle{PID: cmd.Process.Pid, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		if logFile != nil {
			_ = logFile.Close()
		}
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		close(h.done)
		if spec.OnExit != nil {
			spec.OnExit(err)
		}
	}()
	return h, nil
}

// MergeEnv returns base with every key in overrides replaced or appended.
// Inherited entries for overridden keys are dropped so the child sees one value per key
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[k]; ok {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
