// Package scanscript starts the scan-and-upload shell script for a job
package scanscript

import (
	"context"

	"scanweb/internal/platform/logger"
	"scanweb/internal/platform/proc"
	"scanweb/internal/services/scanner/domain"
)

// Launcher implements the scanner service Launcher by running `<shell> <script>` detached
type Launcher struct {
	shell  string
	script string
	start  func(proc.Spec) (*proc.Handle, error)
}

// NewLauncher constructs a Launcher, e.g. NewLauncher("/bin/bash", "/app/scan_adf.sh")
func NewLauncher(shell, script string) *Launcher {
	return &Launcher{shell: shell, script: script, start: proc.Start}
}

// Launch starts the script with env and returns once the process exists.
// The exit status is only logged at debug level
func (l *Launcher) Launch(ctx context.Context, job domain.ScanJob, env []string) error {
	log := logger.C(ctx).With().Str("filename", job.Filename).Logger()
	h, err := l.start(proc.Spec{
		Program: l.shell,
		Args:    []string{l.script},
		Env:     env,
		LogPath: job.LogPath,
		OnExit: func(err error) {
			evt := log.Debug()
			if err != nil {
				evt = evt.Err(err)
			}
			evt.Msg("scan job exited")
		},
	})
	if err != nil {
		return err
	}
	log.Debug().Int("pid", h.PID).Msg("scan job started")
	return nil
}
