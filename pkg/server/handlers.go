package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/store"
)

// maxRequestBody bounds POST /analyze bodies.
const maxRequestBody = 64 << 10

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req keyword.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	res, cached, err := s.analyzer.Analyze(r.Context(), req.URL, refresh)
	if err != nil {
		status, msg := errorResponse(err)
		if status >= 500 {
			s.logger.Error("analysis failed", "url", req.URL, "error", err)
		}
		writeText(w, status, msg)
		return
	}

	w.Header().Set("X-Analysis-ID", res.ID)
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, keyword.Response{Words: res.Words})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecent
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeText(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list history", "error", err)
		writeText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errors.ErrCodeNotFound) {
		writeText(w, http.StatusNotFound, errors.UserMessage(err))
		return
	}
	if err != nil {
		s.logger.Error("get history", "error", err)
		writeText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// errorResponse maps an analysis error to a status and a body.
func errorResponse(err error) (int, string) {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidURL:
		return http.StatusBadRequest, errors.UserMessage(err)
	case errors.ErrCodeFetchFailed:
		return http.StatusBadRequest, "Failed to fetch article: " + cause(err)
	case errors.ErrCodeNotEnoughText:
		return http.StatusUnprocessableEntity, "Not enough text to analyze"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// cause returns the text of the error a structured error wraps.
func cause(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	return errors.UserMessage(err)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
