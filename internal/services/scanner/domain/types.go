// Package domain holds scanner settings, job and status types shared by the service and transports
package domain

import (
	"slices"
	"strconv"
	"time"
)

// Deployment selects how much error detail reaches the user
type Deployment string

const (
	// Development shows full error text to the user
	Development Deployment = "development"
	// Production shows GenericError for anything that is not an input error
	Production Deployment = "production"
)

// MaxProbeTimeout caps the scanner probe no matter what is configured
const MaxProbeTimeout = 10 * time.Second

// User facing messages
const (
	MsgForwarded = "Scan request submitted! Document will be sent to Paperless-ngx after processing."
	MsgLocalOnly = "Scan request submitted! Document will be saved locally only."
	GenericError = "There was an error. Check the server logs."
)

// Status report values
const (
	StatusOK    = "ok"
	StatusError = "error"

	ConsumeConnected   = "Connected"
	ConsumeUnavailable = "Not available"
)

// Settings is the process-wide configuration, loaded once at startup and passed by value
type Settings struct {
	Deployment   Deployment
	BasePath     string
	Sources      []string
	Modes        []string
	Resolutions  []int
	DateFormat   string
	ConsumeDir   string
	Shell        string
	Script       string
	ProbeCmd     []string
	ProbeTimeout time.Duration
	JobLogDir    string
}

// Debug reports whether full error text may be shown
func (s Settings) Debug() bool { return s.Deployment == Development }

// HasMode reports whether mode is configured
func (s Settings) HasMode(mode string) bool { return slices.Contains(s.Modes, mode) }

// HasSource reports whether source is configured
func (s Settings) HasSource(source string) bool { return slices.Contains(s.Sources, source) }

// ScanRequest is the raw submission as received from a transport
type ScanRequest struct {
	Date            string
	Name            string
	Mode            string
	Resolution      string
	Source          string
	Tags            string
	Correspondent   string
	SendToPaperless bool
}

// ScanJob is a validated request ready to hand to the scan script
type ScanJob struct {
	ID              string
	Filename        string
	Mode            string
	Resolution      string
	Source          string
	SendToPaperless bool
	Tags            string
	Correspondent   string
	LogPath         string
}

// Env returns the job specific variables; they override inherited values in the child
func (j ScanJob) Env() map[string]string {
	return map[string]string{
		"FILENAME":                j.Filename,
		"MODE":                    j.Mode,
		"RESOLUTION":              j.Resolution,
		"SOURCE":                  j.Source,
		"SEND_TO_PAPERLESS":       strconv.FormatBool(j.SendToPaperless),
		"PAPERLESS_TAGS":          j.Tags,
		"PAPERLESS_CORRESPONDENT": j.Correspondent,
		"SCAN_JOB_ID":             j.ID,
	}
}

// StatusReport describes attached scanners and intake directory availability
type StatusReport struct {
	Status           string   `json:"status" example:"ok"`
	Message          string   `json:"message,omitempty" example:"exec: \"scanimage\": executable file not found in $PATH"`
	Scanners         []string `json:"scanners"`
	Count            int      `json:"count" example:"1"`
	PaperlessConsume string   `json:"paperless_consume" example:"Connected"`
}

// OK reports whether the probe succeeded
func (r StatusReport) OK() bool { return r.Status == StatusOK }

// Submission is the result of a launched job
type Submission struct {
	JobID           string `json:"job_id" example:"7f1c7c1e-7d1e-4d0c-9a59-5c1a1c0b8f00"`
	Filename        string `json:"filename" example:"2024-01-01-00-00-00-invoice"`
	SendToPaperless bool   `json:"send_to_paperless" example:"true"`
	Message         string `json:"message"`
}

// Options are the choices offered to the user
type Options struct {
	Modes       []string `json:"modes"`
	Sources     []string `json:"sources"`
	Resolutions []int    `json:"resolutions"`
	DefaultDate string   `json:"default_date" example:"2024-01-01-00-00-00"`
}
