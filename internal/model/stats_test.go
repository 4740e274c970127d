package model

import (
	"encoding/json"
	"testing"
)

func TestAverageStatsJSON(t *testing.T) {
	data, err := json.Marshal(AverageStats{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty stats = %s, want {}", data)
	}

	stats := AverageStats{
		Records:                2,
		AvgTokenCount:          5.5,
		AvgTimeToFirstToken:    175,
		AvgTimePerOutputToken:  27.5,
		AvgTotalGenerationTime: 325,
	}
	data, err = json.Marshal(stats)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]float64
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{
		"avg_token_count":           5.5,
		"avg_time_to_first_token":   175,
		"avg_time_per_output_token": 27.5,
		"avg_total_generation_time": 325,
	}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want exactly %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestRecordMissingFields(t *testing.T) {
	r := Record{TokenCount: Float(3), TotalGenerationTime: Float(0)}
	got := r.MissingFields()
	want := []string{"time_to_first_token", "time_per_output_token"}
	if len(got) != len(want) {
		t.Fatalf("MissingFields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MissingFields[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if Value(r.TimeToFirstToken) != 0 || Value(r.TokenCount) != 3 {
		t.Error("Value mismatch")
	}
}
