// Package sqi scores the per-cycle quality of quasi-periodic physiological
// waveforms, after Romano, "A Signal Quality Index for Improving the
// Estimation of Breath-by-Breath Respiratory Rate During Sport and
// Exercise", IEEE Sensors Journal 23(24), 2023.
//
// Each detected cycle (one breath, one heartbeat) is compared against the
// recording's averaged cycle shape; the Pearson correlation with that
// template is the cycle's quality score.
package sqi

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/physiopy/physioqc/dsp"
	"github.com/physiopy/physioqc/waveform"
)

// Compute runs the quality pipeline over w: resample to the analysis rate,
// pre-filter, take the normalized derivative, flatten its amplitude
// envelope, reconstruct through the per-window adaptive filter, segment at
// extrema and score every cycle against the average cycle shape. It returns
// one record per detected cycle or a typed error naming the failed stage.
func Compute(w waveform.Waveform, cfg Config) ([]CycleRecord, error) {
	if err := cfg.Sanitize(); err != nil {
		return nil, err
	}

	if err := w.Validate(); err != nil {
		return nil, &InvalidConfigurationError{Reason: err.Error()}
	}

	log := cfg.Logger.With(zap.String("mode", cfg.Label))

	resampled := w.Resampled(cfg.TargetRate)

	segSamples := int(cfg.SegLength * cfg.TargetRate)
	if resampled.Len() < segSamples {
		return nil, &InputTooShortError{Len: resampled.Len(), Required: segSamples}
	}

	prefiltered, err := dsp.BandpassFilter(resampled, cfg.PrefilterLow, cfg.PrefilterHigh, cfg.PrefilterOrder)
	if err != nil {
		return nil, errors.Wrap(err, "prefilter")
	}

	normDeriv := prefiltered.Gradient().Normalized()

	lower, upper, err := dsp.Envelope(normDeriv, cfg.EnvelopeCutoff, cfg.EnvelopeOrder)
	if err != nil {
		return nil, errors.Wrap(err, "envelope")
	}

	normalized, err := envelopeNormalize(normDeriv.Samples, lower, upper)
	if err != nil {
		return nil, err
	}

	recon, segs, err := reconstruct(normalized, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "adaptive filter")
	}

	slowest := slowestFrequency(segs)

	period := cfg.MinPeriod
	if slowest > 0.0 && 1.0/slowest > period {
		period = 1.0 / slowest
	}

	dist := int(cfg.TargetRate * cfg.DistFrac * period)

	extrema := DetectExtrema(recon, cfg.PeakThresh, dist).Of(cfg.Extremum)

	log.Debug("cycle detection",
		zap.Int("windows", len(segs)),
		zap.Float64("slowest_hz", slowest),
		zap.Int("min_distance", dist),
		zap.Int("extrema", len(extrema)))

	records, err := scoreCycles(recon, extrema, &cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("cycles scored", zap.Int("cycles", len(records)))

	return records, nil
}

// Respiratory scores a respiratory belt trace with the respiratory
// defaults.
func Respiratory(w waveform.Waveform) ([]CycleRecord, error) {
	return Compute(w, RespiratoryConfig())
}

// Cardiac scores a cardiac pulse waveform with the cardiac defaults.
func Cardiac(w waveform.Waveform) ([]CycleRecord, error) {
	return Compute(w, CardiacConfig())
}

// Stats summarizes a scored recording. The band counts follow the
// conventional correlation thresholds used when triaging recordings.
type Stats struct {
	Cycles   int     // cycles scored
	Mean     float64 // mean correlation
	Min      float64 // lowest correlation
	Above90  int     // cycles with correlation > 0.9
	Above80  int     // cycles with correlation in (0.8, 0.9]
	Above70  int     // cycles with correlation in (0.7, 0.8]
	Unusable int     // cycles with correlation <= 0.7
}

// Summarize reduces records to summary statistics.
func Summarize(records []CycleRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	st := Stats{Cycles: len(records), Min: math.Inf(1)}

	sum := 0.0
	for _, rec := range records {
		sum += rec.Correlation

		if rec.Correlation < st.Min {
			st.Min = rec.Correlation
		}

		switch {
		case rec.Correlation > 0.9:
			st.Above90++
		case rec.Correlation > 0.8:
			st.Above80++
		case rec.Correlation > 0.7:
			st.Above70++
		default:
			st.Unusable++
		}
	}

	st.Mean = sum / float64(len(records))

	return st
}
