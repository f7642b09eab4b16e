package module

import (
	"strings"
	"time"

	"scanweb/internal/core/sanitize"
	"scanweb/internal/platform/config"
	"scanweb/internal/platform/logger"
	pstrings "scanweb/internal/platform/strings"
	ptime "scanweb/internal/platform/time"
	"scanweb/internal/services/scanner/domain"
)

// Defaults mirror the stock container image
var (
	DefaultSources     = []string{"ADF Front", "ADF Back", "ADF Duplex"}
	DefaultModes       = []string{"Lineart", "Gray", "Color"}
	DefaultResolutions = []int{150, 300, 600}
)

// DefaultDateFormat is the strftime pattern for the pre-filled date
const DefaultDateFormat = "%Y-%m-%d-%H-%M-%S"

// FromConfig reads scanner settings from the unprefixed environment.
// Invalid values that would make the form unusable panic at startup
func FromConfig(cfg config.Conf) domain.Settings {
	s := domain.Settings{
		Deployment:   deployment(cfg),
		BasePath:     pstrings.BasePath(cfg.MayString("ROOT_PATH", "/")),
		Sources:      cfg.MustCSV("SOURCES", DefaultSources),
		Modes:        cfg.MustCSV("MODES", DefaultModes),
		Resolutions:  cfg.MustCSVInts("RESOLUTIONS", DefaultResolutions),
		DateFormat:   cfg.MayRaw("DATE_FORMAT", DefaultDateFormat),
		ConsumeDir:   cfg.MayString("PAPERLESS_CONSUME_DIR", "/mnt/consume"),
		Shell:        cfg.MayString("SCAN_SHELL", "/bin/bash"),
		Script:       cfg.MayString("SCAN_SCRIPT", "/app/scan_adf.sh"),
		ProbeCmd:     strings.Fields(cfg.MayString("SCAN_PROBE_CMD", "scanimage -L")),
		ProbeTimeout: cfg.MayDuration("SCAN_PROBE_TIMEOUT", domain.MaxProbeTimeout),
		JobLogDir:    cfg.MayString("SCAN_JOB_LOG_DIR", ""),
	}

	stamp, err := ptime.Format(s.DateFormat, time.Now())
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", "DATE_FORMAT").Str("value", s.DateFormat).Msg("invalid strftime pattern")
	}
	// the rendered date pre-fills the form and must come back as a valid filename part
	if _, err := sanitize.Token("date", stamp); err != nil {
		logger.Get().Panic().Err(err).Str("key", "DATE_FORMAT").Str("value", s.DateFormat).Str("rendered", stamp).
			Msg("DATE_FORMAT renders a date that cannot be used in a filename")
	}
	if s.ProbeTimeout <= 0 || s.ProbeTimeout > domain.MaxProbeTimeout {
		logger.Get().Warn().Dur("value", s.ProbeTimeout).Dur("max", domain.MaxProbeTimeout).Msg("SCAN_PROBE_TIMEOUT out of range; clamping")
		s.ProbeTimeout = domain.MaxProbeTimeout
	}
	return s
}

// deployment prefers APP_ENV and falls back to the legacy DEBUG toggle
func deployment(cfg config.Conf) domain.Deployment {
	if cfg.Has("APP_ENV") {
		return domain.Deployment(cfg.MayEnum("APP_ENV", string(domain.Production),
			string(domain.Development), string(domain.Production)))
	}
	if cfg.MayBool("DEBUG", false) {
		return domain.Development
	}
	return domain.Production
}
