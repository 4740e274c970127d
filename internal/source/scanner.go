package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the data file looked up when only a directory is given.
const DefaultFileName = "test_database.json"

// Inspect stats the data file at path and detects its format from the extension.
// A directory resolves to DefaultFileName inside it. Errors from os.Stat are
// returned wrapped, so callers can test for os.ErrNotExist.
func Inspect(path string) (DataFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DataFile{Path: path, Format: DetectFormat(path)}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Inspect(filepath.Join(path, DefaultFileName))
	}

	return DataFile{
		Path:    path,
		Format:  DetectFormat(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// DetectFormat maps a file extension to a Format. Anything that is not a
// known SQLite extension is treated as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}
