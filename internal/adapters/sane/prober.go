// Package sane lists attached scanners through the SANE command line tools
package sane

import (
	"context"

	perr "scanweb/internal/platform/errors"
	"scanweb/internal/platform/proc"
)

// Prober implements the scanner service Prober by running a listing command such as "scanimage -L"
type Prober struct {
	argv []string
}

// NewProber constructs a Prober for argv, e.g. []string{"scanimage", "-L"}
func NewProber(argv []string) *Prober {
	if len(argv) == 0 {
		argv = []string{"scanimage", "-L"}
	}
	return &Prober{argv: append([]string(nil), argv...)}
}

// Program returns the binary the prober runs
func (p *Prober) Program() string { return p.argv[0] }

// ListDevices runs the command under ctx and returns stdout.
// A non-zero exit is an error even when some output was produced
func (p *Prober) ListDevices(ctx context.Context) (string, error) {
	res, err := proc.Run(ctx, p.argv[0], p.argv[1:])
	if err != nil {
		return "", perr.WithOp(err, "sane.list_devices")
	}
	return res.Stdout, nil
}
