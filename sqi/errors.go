package sqi

import "fmt"

// InputTooShortError reports a waveform shorter than one analysis window.
type InputTooShortError struct {
	Len      int // samples supplied at the analysis rate
	Required int // samples one analysis window needs
}

func (e *InputTooShortError) Error() string {
	return fmt.Sprintf("sqi: input of %d samples shorter than one %d sample analysis window", e.Len, e.Required)
}

// DegenerateEnvelopeError reports an envelope collapse, where the upper and
// lower amplitude bounds meet and normalization would divide by zero. A
// flat-line recording is the usual cause.
type DegenerateEnvelopeError struct {
	Index int // first sample where the envelope collapsed
}

func (e *DegenerateEnvelopeError) Error() string {
	return fmt.Sprintf("sqi: envelope collapsed at sample %d, signal has no usable amplitude", e.Index)
}

// InsufficientCyclesError reports too few detected extrema to form an
// average cycle template.
type InsufficientCyclesError struct {
	Extrema int // extrema detected; at least 3 (two cycles) are required
}

func (e *InsufficientCyclesError) Error() string {
	return fmt.Sprintf("sqi: %d extrema detected, need at least 3 to score cycles", e.Extrema)
}

// InvalidConfigurationError reports caller-supplied parameters outside
// their valid domain.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "sqi: invalid configuration: " + e.Reason
}
