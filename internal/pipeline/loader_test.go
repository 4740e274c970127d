package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/source"
	"github.com/theirongolddev/benchavg/internal/store"
)

const sampleDoc = `{"benchmarking_results": [
  {"request_id": "a", "token_count": 5, "time_to_first_token": 150,
   "time_per_output_token": 30, "total_generation_time": 300, "timestamp": "2024-06-01T12:00:00"},
  {"request_id": "b", "token_count": 6, "time_to_first_token": 200,
   "time_per_output_token": 25, "total_generation_time": 350, "timestamp": "2024-06-01T13:00:00"}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "test_database.json", sampleDoc)
	l := NewLoader(path, true)

	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	stats := CalculateAverage(records)
	if stats.AvgTokenCount != 5.5 || stats.AvgTotalGenerationTime != 325 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestLoad_Directory(t *testing.T) {
	path := writeFile(t, source.DefaultFileName, sampleDoc)
	l := NewLoader(filepath.Dir(path), true)

	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len = %d, want 2", len(records))
	}
}

func TestLoad_DevModeOff(t *testing.T) {
	// The file does not exist: the dev-mode check must win without any I/O.
	l := NewLoader(filepath.Join(t.TempDir(), "missing.json"), false)
	_, err := l.Load(context.Background())
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("err = %v, want ErrFeatureDisabled", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"not json", "{{{", ErrMalformedData},
		{"missing key", `{"results": []}`, ErrMalformedData},
		{"wrong field type", `{"benchmarking_results": [{"token_count": "many"}]}`, ErrMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(writeFile(t, "data.json", tt.content), true)
			_, err := l.Load(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		l := NewLoader(filepath.Join(t.TempDir(), "nope.json"), true)
		_, err := l.Load(context.Background())
		if !errors.Is(err, ErrDataNotFound) {
			t.Errorf("err = %v, want ErrDataNotFound", err)
		}
	})
}

func TestLoad_RereadsOnEveryCall(t *testing.T) {
	path := writeFile(t, "data.json", sampleDoc)
	l := NewLoader(path, true)
	ctx := context.Background()

	if _, err := l.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"benchmarking_results": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := l.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d after rewrite, want 0", len(records))
	}
}

func writeStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bench.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	in := []model.Record{
		{RequestID: "a", TokenCount: model.Float(5), Timestamp: "2024-06-01T12:00:00"},
		{RequestID: "b", TokenCount: model.Float(7), TimeToFirstToken: model.Float(100), Timestamp: "2024-06-01T13:00:00"},
	}
	if err := st.ReplaceRecords(context.Background(), in, store.ImportInfo{SourcePath: "x.json"}); err != nil {
		t.Fatal(err)
	}
	_ = st.Close()
	return dbPath
}

func TestLoad_SQLiteCancelledContext(t *testing.T) {
	dbPath := writeStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(dbPath, true).Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrMalformedData) {
		t.Errorf("cancellation reported as malformed data: %v", err)
	}
}

func TestLoad_SQLite(t *testing.T) {
	dbPath := writeStore(t)

	records, err := NewLoader(dbPath, true).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 || records[0].RequestID != "a" {
		t.Fatalf("records = %+v", records)
	}
	if records[0].TimeToFirstToken != nil {
		t.Error("NULL column should load as a missing field")
	}
	stats := CalculateAverage(records)
	if stats.AvgTokenCount != 6 || stats.AvgTimeToFirstToken != 50 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestLastImport(t *testing.T) {
	ctx := context.Background()

	info, ok, err := NewLoader(writeStore(t), true).LastImport(ctx)
	if err != nil || !ok {
		t.Fatalf("LastImport = %v, %v", ok, err)
	}
	if info.SourcePath != "x.json" || info.RecordCount != 2 {
		t.Errorf("info = %+v", info)
	}

	_, ok, err = NewLoader(writeFile(t, "test_database.json", sampleDoc), true).LastImport(ctx)
	if ok || err != nil {
		t.Errorf("JSON data file: ok=%v err=%v, want false, nil", ok, err)
	}
}

func BenchmarkLoadAndAverage(b *testing.B) {
	records := make([]model.Record, 5000)
	for i := range records {
		records[i] = model.Record{
			TokenCount:          model.Float(float64(i % 40)),
			TimeToFirstToken:    model.Float(150),
			TimePerOutputToken:  model.Float(25),
			TotalGenerationTime: model.Float(400),
			Timestamp:           "2024-06-01T12:00:00",
		}
	}
	data, err := source.Marshal(records)
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "bench.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		b.Fatal(err)
	}
	l := NewLoader(path, true)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		got, err := l.Load(ctx)
		if err != nil {
			b.Fatal(err)
		}
		_ = CalculateAverage(got)
	}
}
