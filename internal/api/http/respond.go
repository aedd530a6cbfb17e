package http

import (
	"encoding/json"
	"net/http"

	"darna-backend/internal/apperr"
	"darna-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response body", "error", err)
	}
}

// writeError is the single place error kinds turn into HTTP statuses. Every
// handler funnels mutating-operation failures through here so the
// kind-to-notice mapping stays uniform across the API.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	msg := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		msg = "something went wrong"
	}
	writeJSON(w, status, errorBody{Error: msg, Kind: kind.String()})
}

type pagedResponse struct {
	Items      any   `json:"items"`
	TotalCount int32 `json:"total_count"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

func writePage(w http.ResponseWriter, items any, total, page, pageSize int32) {
	writeJSON(w, http.StatusOK, pagedResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}
