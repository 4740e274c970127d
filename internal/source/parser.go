// Package source reads and validates benchmarking result documents.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/benchavg/internal/model"
)

var (
	// ErrMalformedData indicates the document is not a JSON object carrying a
	// benchmarking_results array.
	ErrMalformedData = errors.New("source: malformed data")
	// ErrMalformedRecord indicates a single record could not be interpreted.
	ErrMalformedRecord = errors.New("source: malformed record")
)

// ParseFile reads and parses the JSON document at path.
func ParseFile(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from local configuration
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a benchmarking results document.
//
// Records are not validated against a schema: unknown keys are ignored and
// absent or null numeric fields stay nil. A value of the wrong JSON type
// fails the whole document with ErrMalformedRecord.
func Parse(data []byte) ([]model.Record, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if doc.Results == nil {
		return nil, fmt.Errorf("%w: missing %q array", ErrMalformedData, ResultsKey)
	}

	raw := *doc.Results
	records := make([]model.Record, 0, len(raw))
	for i, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, fmt.Errorf("%w: record %d is null", ErrMalformedRecord, i)
		}
		var r model.Record
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedRecord, i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Marshal encodes records as a benchmarking results document.
func Marshal(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	return json.MarshalIndent(map[string][]model.Record{ResultsKey: records}, "", "  ")
}
