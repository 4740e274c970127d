package model

import "encoding/json"

// AverageStats holds the four-field arithmetic mean over a set of records.
// The zero value (Records == 0) encodes as an empty JSON object.
type AverageStats struct {
	Records int `json:"-"`

	AvgTokenCount          float64 `json:"avg_token_count"`
	AvgTimeToFirstToken    float64 `json:"avg_time_to_first_token"`
	AvgTimePerOutputToken  float64 `json:"avg_time_per_output_token"`
	AvgTotalGenerationTime float64 `json:"avg_total_generation_time"`
}

// Empty reports whether the stats were computed over zero records.
func (s AverageStats) Empty() bool {
	return s.Records == 0
}

// MarshalJSON writes {} for empty stats so the keys are absent rather than zero.
func (s AverageStats) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("{}"), nil
	}
	type plain AverageStats
	return json.Marshal(plain(s))
}
