package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedObservation marks an observation payload that could not be decoded.
var ErrMalformedObservation = errors.New("malformed observation")

// MissingFeatureError reports a required feature that is absent or not a
// finite number.
type MissingFeatureError struct {
	Field string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing required feature %q", e.Field)
}

// InvalidHorizonError reports a forecast horizon or step that cannot produce
// a forecast.
type InvalidHorizonError struct {
	HorizonHours int
	StepHours    int
	Reason       string
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid forecast horizon %dh (step %dh): %s", e.HorizonHours, e.StepHours, e.Reason)
}

// PredictionFailure wraps a predictor or classifier error raised while
// computing the given forecast hour. The whole run is discarded.
type PredictionFailure struct {
	StepHour int
	Err      error
}

func (e *PredictionFailure) Error() string {
	return fmt.Sprintf("prediction failed at hour %d: %v", e.StepHour, e.Err)
}

func (e *PredictionFailure) Unwrap() error {
	return e.Err
}
