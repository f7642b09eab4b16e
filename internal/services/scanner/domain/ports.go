package domain

import "context"

// Prober lists attached scanners; it returns the raw listing output
type Prober interface {
	ListDevices(ctx context.Context) (string, error)
}

// Launcher starts the scan script for job with the full child environment and returns without waiting
type Launcher interface {
	Launch(ctx context.Context, job ScanJob, env []string) error
}

// ServicePort is consumed by the API handlers and the web front end
type ServicePort interface {
	Status(ctx context.Context) StatusReport
	Submit(ctx context.Context, req ScanRequest) (Submission, error)
	Options() Options
	Settings() Settings
	// Public maps err to what a user may see for the current deployment
	Public(err error) error
}
