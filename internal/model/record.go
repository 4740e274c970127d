// Package model defines domain types for benchmarking records and their averages.
package model

// Record is one measured text-generation request.
// Numeric fields are nil when the source omitted them.
type Record struct {
	RequestID           string   `json:"request_id,omitempty"`
	PromptText          string   `json:"prompt_text,omitempty"`
	GeneratedText       string   `json:"generated_text,omitempty"`
	TokenCount          *float64 `json:"token_count,omitempty"`
	TimeToFirstToken    *float64 `json:"time_to_first_token,omitempty"`
	TimePerOutputToken  *float64 `json:"time_per_output_token,omitempty"`
	TotalGenerationTime *float64 `json:"total_generation_time,omitempty"`
	Timestamp           string   `json:"timestamp,omitempty"`
}

// Value returns the pointed-to value, or 0 when the field is missing.
func Value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 {
	return &v
}

// MissingFields lists the numeric fields absent from r, in JSON key form.
func (r Record) MissingFields() []string {
	var missing []string
	if r.TokenCount == nil {
		missing = append(missing, "token_count")
	}
	if r.TimeToFirstToken == nil {
		missing = append(missing, "time_to_first_token")
	}
	if r.TimePerOutputToken == nil {
		missing = append(missing, "time_per_output_token")
	}
	if r.TotalGenerationTime == nil {
		missing = append(missing, "total_generation_time")
	}
	return missing
}
