package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/benchavg/internal/model"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{5.5, "5.5"},
		{10.2, "10.2"},
		{216, "216"},
		{1234.567, "1,234.57"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		if got := FormatMetric(tt.in); got != tt.want {
			t.Errorf("FormatMetric(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "150 ms"},
		{27.5, "27.5 ms"},
		{1850, "1.85 s"},
		{12500, "12.5 s"},
	}
	for _, tt := range tests {
		if got := FormatMillis(tt.in); got != tt.want {
			t.Errorf("FormatMillis(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional(nil, FormatMetric); got != "-" {
		t.Errorf("FormatOptional(nil) = %q, want -", got)
	}
	if got := FormatOptional(model.Float(3), FormatMetric); got != "3" {
		t.Errorf("FormatOptional(3) = %q, want 3", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("a long\nprompt text", 8); got != "a long …" {
		t.Errorf("Truncate = %q, want %q", got, "a long …")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Average"},
		Rows: [][]string{
			{"Token count", "5.5"},
			{"---"},
			{"Records", "2"},
		},
	})
	for _, want := range []string{"Metric", "Token count", "5.5", "Records"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 7 {
		t.Errorf("table has %d lines, want 7:\n%s", got, out)
	}
}

func TestRenderLineChart(t *testing.T) {
	if RenderLineChart(nil, 40, 5, "") != "" {
		t.Error("empty series should render nothing")
	}
	out := RenderLineChart([]float64{1, 5, 3}, 40, 5, "latency")
	if !strings.Contains(out, "latency") {
		t.Errorf("chart missing caption:\n%s", out)
	}
	if RenderLineChart([]float64{7}, 10, 1, "") == "" {
		t.Error("single point should still render")
	}
}
