package source

import (
	"encoding/json"
	"time"
)

// ResultsKey is the top-level key holding the record array.
const ResultsKey = "benchmarking_results"

// Format identifies how a data file is stored.
type Format int

const (
	// FormatJSON is a JSON document with a ResultsKey array.
	FormatJSON Format = iota
	// FormatSQLite is a database written by `benchavg import`.
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatSQLite:
		return "sqlite"
	default:
		return "json"
	}
}

// rawDocument is the on-disk JSON envelope. Results stays raw so that each
// record can be decoded, and reported, on its own.
type rawDocument struct {
	Results *[]json.RawMessage `json:"benchmarking_results"`
}

// DataFile describes a located data file.
type DataFile struct {
	Path    string
	Format  Format
	Size    int64
	ModTime time.Time
}
