package pipeline

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/benchavg/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{
			RequestID:           "a",
			TokenCount:          model.Float(5),
			TimeToFirstToken:    model.Float(150),
			TimePerOutputToken:  model.Float(30),
			TotalGenerationTime: model.Float(300),
			Timestamp:           "2024-06-01T12:00:00",
		},
		{
			RequestID:           "b",
			TokenCount:          model.Float(6),
			TimeToFirstToken:    model.Float(200),
			TimePerOutputToken:  model.Float(25),
			TotalGenerationTime: model.Float(350),
			Timestamp:           "2024-06-01T13:00:00",
		},
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q): %v", s, err)
	}
	return ts
}

func TestCalculateAverage(t *testing.T) {
	got := CalculateAverage(sampleRecords())
	want := model.AverageStats{
		Records:                2,
		AvgTokenCount:          5.5,
		AvgTimeToFirstToken:    175,
		AvgTimePerOutputToken:  27.5,
		AvgTotalGenerationTime: 325,
	}
	if got != want {
		t.Errorf("CalculateAverage = %+v, want %+v", got, want)
	}
}

func TestCalculateAverage_Empty(t *testing.T) {
	got := CalculateAverage(nil)
	if !got.Empty() {
		t.Errorf("CalculateAverage(nil) = %+v, want empty", got)
	}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("json = %s, want {}", data)
	}
}

func TestCalculateAverage_MissingFieldsCountAsZero(t *testing.T) {
	records := []model.Record{
		{TokenCount: model.Float(10), TimeToFirstToken: model.Float(100)},
		{TokenCount: model.Float(20)},
	}
	got := CalculateAverage(records)
	if got.AvgTokenCount != 15 {
		t.Errorf("AvgTokenCount = %v, want 15", got.AvgTokenCount)
	}
	if got.AvgTimeToFirstToken != 50 {
		t.Errorf("AvgTimeToFirstToken = %v, want 50", got.AvgTimeToFirstToken)
	}
	if got.AvgTimePerOutputToken != 0 || got.AvgTotalGenerationTime != 0 {
		t.Errorf("missing fields should average to 0, got %+v", got)
	}
}

func TestCalculateAverage_FullFixture(t *testing.T) {
	// Five records matching the bundled test_database.json.
	vals := [][4]float64{
		{10, 200, 30, 500},
		{12, 250, 25, 550},
		{8, 180, 28, 430},
		{11, 230, 27, 520},
		{10, 220, 28, 426},
	}
	records := make([]model.Record, 0, len(vals))
	for _, v := range vals {
		records = append(records, model.Record{
			TokenCount:          model.Float(v[0]),
			TimeToFirstToken:    model.Float(v[1]),
			TimePerOutputToken:  model.Float(v[2]),
			TotalGenerationTime: model.Float(v[3]),
		})
	}

	got := CalculateAverage(records)
	if got.AvgTokenCount != 10.2 || got.AvgTimeToFirstToken != 216 ||
		got.AvgTimePerOutputToken != 27.6 || got.AvgTotalGenerationTime != 485.2 {
		t.Errorf("CalculateAverage = %+v, want 10.2/216/27.6/485.2", got)
	}
}

func TestFilterByRange(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name       string
		start, end string
		wantIDs    []string
	}{
		{"full day", "2024-06-01T00:00:00", "2024-06-01T23:59:59", []string{"a", "b"}},
		{"first hour only", "2024-06-01T12:00:00", "2024-06-01T12:59:59", []string{"a"}},
		{"inclusive both ends", "2024-06-01T12:00:00", "2024-06-01T13:00:00", []string{"a", "b"}},
		{"exact end bound", "2024-06-01T13:00:00", "2024-06-01T13:00:00", []string{"b"}},
		{"no overlap", "2023-01-01T00:00:00", "2023-01-02T00:00:00", nil},
		{"inverted range", "2024-06-02T00:00:00", "2024-06-01T00:00:00", nil},
		{"offset bounds", "2024-06-01T14:00:00+02:00", "2024-06-01T15:30:00+02:00", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterByRange(records, mustTime(t, tt.start), mustTime(t, tt.end))
			if err != nil {
				t.Fatalf("FilterByRange: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].RequestID != id {
					t.Errorf("got[%d] = %s, want %s", i, got[i].RequestID, id)
				}
			}
		})
	}
}

func TestFilterByRange_RangeAverages(t *testing.T) {
	records := sampleRecords()

	got, err := FilterByRange(records, mustTime(t, "2024-06-01T12:00:00"), mustTime(t, "2024-06-01T12:59:59"))
	if err != nil {
		t.Fatal(err)
	}
	stats := CalculateAverage(got)
	if stats.AvgTokenCount != 5 || stats.AvgTimeToFirstToken != 150 ||
		stats.AvgTimePerOutputToken != 30 || stats.AvgTotalGenerationTime != 300 {
		t.Errorf("stats = %+v, want 5/150/30/300", stats)
	}

	none, err := FilterByRange(records, mustTime(t, "2023-01-01T00:00:00"), mustTime(t, "2023-12-31T23:59:59"))
	if err != nil {
		t.Fatal(err)
	}
	if !CalculateAverage(none).Empty() {
		t.Error("expected empty stats for a range with no records")
	}
}

func TestFilterByRange_StableAndNonMutating(t *testing.T) {
	records := []model.Record{
		{RequestID: "late", Timestamp: "2024-06-01T15:00:00"},
		{RequestID: "early", Timestamp: "2024-06-01T09:00:00"},
		{RequestID: "mid", Timestamp: "2024-06-01T12:00:00"},
	}
	before := append([]model.Record(nil), records...)

	got, err := FilterByRange(records, mustTime(t, "2024-06-01"), mustTime(t, "2024-06-02"))
	if err != nil {
		t.Fatal(err)
	}
	order := []string{"late", "early", "mid"}
	for i, id := range order {
		if got[i].RequestID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].RequestID, id)
		}
	}
	for i := range records {
		if records[i].RequestID != before[i].RequestID {
			t.Fatal("input slice was modified")
		}
	}
	got[0].RequestID = "changed"
	if records[0].RequestID != "late" {
		t.Error("output aliases the input slice")
	}
}

func TestFilterByRange_MalformedRecordTimestamp(t *testing.T) {
	records := []model.Record{
		{RequestID: "ok", Timestamp: "2024-06-01T12:00:00"},
		{RequestID: "bad", Timestamp: "yesterday"},
	}
	_, err := FilterByRange(records, mustTime(t, "2024-01-01"), mustTime(t, "2024-12-31"))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("2024-06-01T12:00:00", "2024-06-01T12:59:59")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if !end.After(start) {
		t.Errorf("end %v not after start %v", end, start)
	}

	bad := [][2]string{
		{"not-a-date", "2024-06-01T12:00:00"},
		{"2024-06-01T12:00:00", "2024-13-01T00:00:00"},
		{"", ""},
	}
	for _, b := range bad {
		if _, _, err := ParseRange(b[0], b[1]); !errors.Is(err, ErrMalformedTimestamp) {
			t.Errorf("ParseRange(%q, %q) err = %v, want ErrMalformedTimestamp", b[0], b[1], err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T12", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:30", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-06-01T12:30:45", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
		{"2024-06-01 12:30:45", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
		{"2024-06-01T12:30:45.250", time.Date(2024, 6, 1, 12, 30, 45, 250_000_000, time.UTC)},
		{"2024-06-01T12:30:45Z", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
		{"2024-06-01T14:30:45+02:00", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
		{"2024-06-01T14:30:45+0200", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	for _, in := range []string{"", "2024", "06/01/2024", "2024-06-01T25:00:00", "2024-06-01Tnoon"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q) succeeded, want error", in)
		}
	}
}
