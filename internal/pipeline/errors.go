package pipeline

import (
	"errors"

	"github.com/theirongolddev/benchavg/internal/source"
)

var (
	// ErrFeatureDisabled is returned by Load when the loader is not in dev mode.
	ErrFeatureDisabled = errors.New("pipeline: feature not ready for live environment")
	// ErrDataNotFound is returned when the configured data file does not exist.
	ErrDataNotFound = errors.New("pipeline: data file not found")
	// ErrMalformedTimestamp is returned when a range bound cannot be parsed.
	ErrMalformedTimestamp = errors.New("pipeline: malformed timestamp")
	// ErrMalformedData re-exports source.ErrMalformedData.
	ErrMalformedData = source.ErrMalformedData
	// ErrMalformedRecord re-exports source.ErrMalformedRecord.
	ErrMalformedRecord = source.ErrMalformedRecord
)
