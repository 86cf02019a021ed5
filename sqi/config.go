package sqi

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// ExtremumKind selects which extrema bound a cycle.
type ExtremumKind int

const (
	// Peaks segments cycles at signal maxima. Breath cycles read best
	// peak-to-peak.
	Peaks ExtremumKind = iota
	// Troughs segments cycles at signal minima. Beat cycles read best
	// trough-to-trough.
	Troughs
)

// Config holds every tunable of the quality pipeline. The mode constructors
// RespiratoryConfig and CardiacConfig supply working defaults; the pipeline
// itself runs one fixed algorithm regardless of mode.
type Config struct {
	// TargetRate is the internal analysis sample rate in Hz
	TargetRate float64
	// PrefilterLow and PrefilterHigh bound the pre-filter passband in Hz
	PrefilterLow  float64
	PrefilterHigh float64
	// PrefilterOrder is the Butterworth order of the pre-filter
	PrefilterOrder int
	// EnvelopeCutoff is the envelope low-pass cutoff in Hz
	EnvelopeCutoff float64
	// EnvelopeOrder is the Butterworth order of the envelope low-pass
	EnvelopeOrder int
	// SegLength is the sliding analysis window length in seconds
	SegLength float64
	// SegStep is the sliding analysis window step in seconds
	SegStep float64
	// BandWidthPct is the full width of the per-window filter passband in
	// percent of the window's dominant frequency
	BandWidthPct float64
	// SegFilterOrder is the Butterworth order of the per-window filter
	SegFilterOrder int
	// MinPeriod is the fastest physiologically credible cycle period in
	// seconds, the floor under the adaptive extremum spacing
	MinPeriod float64
	// DistFrac scales a cycle period into a minimum extremum spacing
	DistFrac float64
	// PeakThresh is the minimum extremum height as a fraction of the
	// reconstructed signal's amplitude range
	PeakThresh float64
	// TemplateLen is the canonical cycle length in samples for scoring
	TemplateLen int
	// Extremum selects peak or trough cycle boundaries
	Extremum ExtremumKind
	// Workers bounds the goroutines used for window filtering and cycle
	// scoring; zero means one per CPU
	Workers int
	// Label names the mode in logs
	Label string
	// Logger receives per-stage debug output; nil disables logging
	Logger *zap.Logger
}

// RespiratoryConfig returns the defaults for respiratory belt traces.
// The fastest credible breathing rate is 20 breaths/min, a 3 second
// period, and breaths segment peak-to-peak at half that spacing.
func RespiratoryConfig() Config {
	return Config{
		TargetRate:     25.0,
		PrefilterLow:   0.01,
		PrefilterHigh:  2.0,
		PrefilterOrder: 3,
		EnvelopeCutoff: 0.05,
		EnvelopeOrder:  3,
		SegLength:      12.0,
		SegStep:        2.0,
		BandWidthPct:   10.0,
		SegFilterOrder: 1,
		MinPeriod:      3.0,
		DistFrac:       0.5,
		PeakThresh:     0.05,
		TemplateLen:    100,
		Extremum:       Peaks,
		Label:          "respiratory",
	}
}

// CardiacConfig returns the defaults for cardiac pulse waveforms.
// The fastest credible heart rate is 200 bpm, a 0.3 second period, and
// beats segment trough-to-trough at three quarters of that spacing.
func CardiacConfig() Config {
	return Config{
		TargetRate:     50.0,
		PrefilterLow:   0.01,
		PrefilterHigh:  5.0,
		PrefilterOrder: 3,
		EnvelopeCutoff: 0.1,
		EnvelopeOrder:  3,
		SegLength:      4.0,
		SegStep:        0.5,
		BandWidthPct:   10.0,
		SegFilterOrder: 1,
		MinPeriod:      0.3,
		DistFrac:       0.75,
		PeakThresh:     0.05,
		TemplateLen:    100,
		Extremum:       Troughs,
		Label:          "cardiac",
	}
}

// Sanitize validates the configuration and fills the logger.
func (cfg *Config) Sanitize() error {
	nyquist := cfg.TargetRate / 2.0

	switch {
	case cfg.TargetRate <= 0:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("target rate %g not positive", cfg.TargetRate)}

	case cfg.SegLength <= 0:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("window length %gs not positive", cfg.SegLength)}

	case cfg.SegStep <= 0 || cfg.SegStep > cfg.SegLength:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("window step %gs outside (0, %gs]", cfg.SegStep, cfg.SegLength)}

	case cfg.PrefilterLow < 0 || cfg.PrefilterHigh <= cfg.PrefilterLow:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("pre-filter band [%g, %g] not ordered", cfg.PrefilterLow, cfg.PrefilterHigh)}

	case cfg.PrefilterHigh >= nyquist:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("pre-filter high cutoff %gHz at or above Nyquist %gHz", cfg.PrefilterHigh, nyquist)}

	case cfg.PrefilterOrder < 1 || cfg.EnvelopeOrder < 1 || cfg.SegFilterOrder < 1:
		return &InvalidConfigurationError{Reason: "filter orders must be at least 1"}

	case cfg.EnvelopeCutoff <= 0 || cfg.EnvelopeCutoff >= nyquist:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("envelope cutoff %gHz outside (0, %gHz)", cfg.EnvelopeCutoff, nyquist)}

	case cfg.BandWidthPct <= 0 || cfg.BandWidthPct >= 200:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("band width %g%% outside (0, 200)", cfg.BandWidthPct)}

	case cfg.MinPeriod <= 0:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("minimum period %gs not positive", cfg.MinPeriod)}

	case cfg.DistFrac <= 0:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("distance fraction %g not positive", cfg.DistFrac)}

	case cfg.PeakThresh < 0 || cfg.PeakThresh >= 1:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("peak threshold %g outside [0, 1)", cfg.PeakThresh)}

	case cfg.TemplateLen < 2:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("template length %d below 2", cfg.TemplateLen)}

	case cfg.Workers < 0:
		return &InvalidConfigurationError{Reason: fmt.Sprintf("worker count %d negative", cfg.Workers)}
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return nil
}

// workerCount resolves Workers against the job count.
func (cfg *Config) workerCount(jobs int) int {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > jobs {
		workers = jobs
	}

	return workers
}
