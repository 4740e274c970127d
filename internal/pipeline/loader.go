// Package pipeline loads benchmarking records and computes their averages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/source"
	"github.com/theirongolddev/benchavg/internal/store"
)

// Loader reads the full record set from a data file on every call.
type Loader struct {
	DataFile string
	// DevMode gates loading. A loader with DevMode false refuses every call
	// without touching the filesystem.
	DevMode bool
}

// NewLoader returns a Loader for the given data file.
func NewLoader(dataFile string, devMode bool) *Loader {
	if dataFile == "" {
		dataFile = source.DefaultFileName
	}
	return &Loader{DataFile: dataFile, DevMode: devMode}
}

// Load reads every record from the data file. JSON documents and SQLite
// stores written by `benchavg import` are both supported.
func (l *Loader) Load(ctx context.Context) ([]model.Record, error) {
	if !l.DevMode {
		return nil, ErrFeatureDisabled
	}

	df, err := l.Inspect()
	if err != nil {
		return nil, err
	}

	switch df.Format {
	case source.FormatSQLite:
		return loadSQLite(ctx, df.Path)
	default:
		records, err := source.ParseFile(df.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrDataNotFound, df.Path)
			}
			return nil, fmt.Errorf("loading %s: %w", df.Path, err)
		}
		return records, nil
	}
}

// Inspect locates the data file without reading it.
func (l *Loader) Inspect() (source.DataFile, error) {
	path := l.DataFile
	if path == "" {
		path = source.DefaultFileName
	}
	df, err := source.Inspect(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return df, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return df, fmt.Errorf("inspecting data file: %w", err)
	}
	return df, nil
}

// LastImport reports where a SQLite data file was imported from. ok is false
// for JSON data files and for stores without an import record.
func (l *Loader) LastImport(ctx context.Context) (info store.ImportInfo, ok bool, err error) {
	df, err := l.Inspect()
	if err != nil {
		return store.ImportInfo{}, false, err
	}
	if df.Format != source.FormatSQLite {
		return store.ImportInfo{}, false, nil
	}

	st, err := store.OpenReadOnly(df.Path)
	if err != nil {
		return store.ImportInfo{}, false, fmt.Errorf("opening %s: %w", df.Path, err)
	}
	defer func() { _ = st.Close() }()
	return st.LastImport(ctx)
}

func loadSQLite(ctx context.Context, path string) ([]model.Record, error) {
	st, err := store.OpenReadOnly(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = st.Close() }()

	records, err := st.LoadRecords(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("reading %s: %w", path, ctxErr)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrMalformedData, path, err)
	}
	return records, nil
}
