package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// writeFailure maps an unsuccessful result to 404 or 500.
func writeFailure[T any](w http.ResponseWriter, res result.Result[T], notFoundMsg, failMsg string) {
	if res.IsNotFound() {
		WriteError(w, http.StatusNotFound, notFoundMsg, nil)
		return
	}
	var cause error
	if res.Error != nil {
		cause = errors.New(res.Error.Message)
	}
	WriteError(w, http.StatusInternalServerError, failMsg, cause)
}

// orEmpty keeps empty lists as [] in responses; cached results may carry nil.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
