package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/benchavg/internal/model"
)

// CalculateAverage computes the mean of each numeric field across records.
// Missing fields count as zero. An empty slice yields empty stats.
func CalculateAverage(records []model.Record) model.AverageStats {
	if len(records) == 0 {
		return model.AverageStats{}
	}

	var tokens, ttft, tpot, total float64
	for _, r := range records {
		tokens += model.Value(r.TokenCount)
		ttft += model.Value(r.TimeToFirstToken)
		tpot += model.Value(r.TimePerOutputToken)
		total += model.Value(r.TotalGenerationTime)
	}

	n := float64(len(records))
	return model.AverageStats{
		Records:                len(records),
		AvgTokenCount:          tokens / n,
		AvgTimeToFirstToken:    ttft / n,
		AvgTimePerOutputToken:  tpot / n,
		AvgTotalGenerationTime: total / n,
	}
}

// FilterByRange returns the records whose timestamp falls within
// [start, end], in their original order. The input is not modified.
func FilterByRange(records []model.Record, start, end time.Time) ([]model.Record, error) {
	out := make([]model.Record, 0, len(records))
	for i, r := range records {
		ts, err := ParseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (request_id %q): %v", ErrMalformedRecord, i, r.RequestID, err)
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ParseRange parses both bounds of a time range.
func ParseRange(startRaw, endRaw string) (start, end time.Time, err error) {
	start, err = ParseTimestamp(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrMalformedTimestamp, startRaw)
	}
	end, err = ParseTimestamp(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrMalformedTimestamp, endRaw)
	}
	return start, end, nil
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 date or date-time. Seconds, fractional
// seconds and a zone offset are optional; the date and time may be separated
// by 'T' or a space. Values without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}
