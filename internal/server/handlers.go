package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theirongolddev/benchavg/internal/logging"
	"github.com/theirongolddev/benchavg/internal/pipeline"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeMalformedTimestamp = "malformed_timestamp"
	CodeFeatureDisabled    = "feature_disabled"
	CodeDataNotFound       = "data_not_found"
	CodeMalformedData      = "malformed_data"
	CodeMalformedRecord    = "malformed_record"
	CodeInternal           = "internal_error"
)

// Plain-text bodies used when legacy responses are enabled.
const (
	LegacyTimeFormatMessage = "Time format should be YYYY-MM-DDTHH:MM:SS"
	LegacyNotFoundMessage   = "The program can't find the data file.\nPut test_database.json at the top of the project or set general.data_file."
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Service) handleAverage(w http.ResponseWriter, r *http.Request) {
	records, err := s.loader.Load(r.Context())
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pipeline.CalculateAverage(records))
}

func (s *Service) handleAverageRange(w http.ResponseWriter, r *http.Request) {
	records, err := s.loader.Load(r.Context())
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	start, end, err := pipeline.ParseRange(r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	filtered, err := pipeline.FilterByRange(records, start, end)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pipeline.CalculateAverage(filtered))
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	respondWithJSON(w, http.StatusOK, events)
}

// classify maps a pipeline error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrMalformedTimestamp):
		return http.StatusBadRequest, CodeMalformedTimestamp
	case errors.Is(err, pipeline.ErrFeatureDisabled):
		return http.StatusServiceUnavailable, CodeFeatureDisabled
	case errors.Is(err, pipeline.ErrDataNotFound):
		return http.StatusServiceUnavailable, CodeDataNotFound
	case errors.Is(err, pipeline.ErrMalformedRecord):
		return http.StatusInternalServerError, CodeMalformedRecord
	case errors.Is(err, pipeline.ErrMalformedData):
		return http.StatusInternalServerError, CodeMalformedData
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Service) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	s.recordError(err)
	setCode(r, code)
	logging.Warn("request failed",
		"request_id", RequestIDFrom(r.Context()),
		"code", code,
		"error", err,
	)

	if s.cfg.LegacyResponses {
		switch code {
		case CodeMalformedTimestamp:
			respondWithText(w, http.StatusOK, LegacyTimeFormatMessage)
		case CodeDataNotFound:
			respondWithText(w, http.StatusOK, LegacyNotFoundMessage)
		default:
			respondWithText(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondWithText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
