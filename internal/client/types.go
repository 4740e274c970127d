package client

import (
	"fmt"

	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/pipeline"
	"github.com/theirongolddev/benchavg/internal/server"
)

// Averages is a decoded averages response.
type Averages struct {
	Stats model.AverageStats
	// Empty is true when the service matched no records and answered {}.
	Empty     bool
	RequestID string
}

// APIError is a non-success answer from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("benchavg: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("benchavg: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the service error code back to the pipeline sentinel, so
// callers can use errors.Is on either side of the wire.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case server.CodeMalformedTimestamp:
		return pipeline.ErrMalformedTimestamp
	case server.CodeFeatureDisabled:
		return pipeline.ErrFeatureDisabled
	case server.CodeDataNotFound:
		return pipeline.ErrDataNotFound
	case server.CodeMalformedData:
		return pipeline.ErrMalformedData
	case server.CodeMalformedRecord:
		return pipeline.ErrMalformedRecord
	}
	return nil
}
