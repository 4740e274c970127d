package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/benchavg/internal/pipeline"
	"github.com/theirongolddev/benchavg/internal/server"
)

const sampleDoc = `{"benchmarking_results": [
  {"request_id": "a", "token_count": 5, "time_to_first_token": 150,
   "time_per_output_token": 30, "total_generation_time": 300, "timestamp": "2024-06-01T12:00:00"},
  {"request_id": "b", "token_count": 6, "time_to_first_token": 200,
   "time_per_output_token": 25, "total_generation_time": 350, "timestamp": "2024-06-01T13:00:00"}
]}`

func startService(t *testing.T, cfg server.Config) *Client {
	t.Helper()
	if cfg.DataFile == "" {
		path := filepath.Join(t.TempDir(), "test_database.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))
		cfg.DataFile = path
	}
	ts := httptest.NewServer(server.New(cfg).Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL)
}

func TestFetchAverage(t *testing.T) {
	c := startService(t, server.Config{DevMode: true})

	got, err := c.FetchAverage(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Empty)
	assert.NotEmpty(t, got.RequestID)
	assert.Equal(t, 5.5, got.Stats.AvgTokenCount)
	assert.Equal(t, 175.0, got.Stats.AvgTimeToFirstToken)
	assert.Equal(t, 27.5, got.Stats.AvgTimePerOutputToken)
	assert.Equal(t, 325.0, got.Stats.AvgTotalGenerationTime)
}

func TestFetchAverageRange(t *testing.T) {
	c := startService(t, server.Config{DevMode: true})
	ctx := context.Background()

	got, err := c.FetchAverageRange(ctx, "2024-06-01T12:00:00", "2024-06-01T12:59:59")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Stats.AvgTokenCount)
	assert.Equal(t, 300.0, got.Stats.AvgTotalGenerationTime)

	got, err = c.FetchAverageRange(ctx, "2024-06-01T11:00:00+00:00", "2024-06-01T13:00:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, 5.5, got.Stats.AvgTokenCount)

	got, err = c.FetchAverageRange(ctx, "2023-01-01T00:00:00", "2023-12-31T23:59:59")
	require.NoError(t, err)
	assert.True(t, got.Empty)
}

func TestFetchErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed timestamp", func(t *testing.T) {
		c := startService(t, server.Config{DevMode: true})
		_, err := c.FetchAverageRange(ctx, "noon", "2024-06-01T12:00:00")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.True(t, errors.Is(err, pipeline.ErrMalformedTimestamp))
	})

	t.Run("feature disabled", func(t *testing.T) {
		c := startService(t, server.Config{DevMode: false})
		_, err := c.FetchAverage(ctx)
		assert.ErrorIs(t, err, pipeline.ErrFeatureDisabled)
	})

	t.Run("legacy time format", func(t *testing.T) {
		c := startService(t, server.Config{DevMode: true, LegacyResponses: true})
		_, err := c.FetchAverageRange(ctx, "noon", "later")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusOK, apiErr.StatusCode)
		assert.ErrorIs(t, err, pipeline.ErrMalformedTimestamp)
	})

	t.Run("legacy missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "none.json")
		c := startService(t, server.Config{DevMode: true, LegacyResponses: true, DataFile: missing})
		_, err := c.FetchAverage(ctx)
		assert.ErrorIs(t, err, pipeline.ErrDataNotFound)
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		addr := ts.URL
		ts.Close()
		_, err := NewClient(addr).FetchAverage(ctx)
		assert.Error(t, err)
	})
}

func TestFetchStatus(t *testing.T) {
	c := startService(t, server.Config{DevMode: true, LegacyResponses: true})
	ctx := context.Background()

	_, err := c.FetchAverage(ctx)
	require.NoError(t, err)

	st, err := c.FetchStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.DevMode)
	assert.True(t, st.LegacyResponses)
	assert.Equal(t, int64(1), st.Requests)
}

func TestNewClientAddr(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8000", NewClient("127.0.0.1:8000").baseURL)
	assert.Equal(t, "https://bench.example", NewClient("https://bench.example/").baseURL)
}
