package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/apperr"
	"darna-backend/internal/settings"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func knownKey(key string) bool {
	for _, k := range settings.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !knownKey(key) {
		writeError(w, apperr.Newf(apperr.KindNotFound, "unknown settings key %q", key))
		return
	}

	payload, err := h.store.Get(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	if payload == nil {
		// Never written: serve the built-in default so admins always see a
		// complete settings form.
		snap := settings.DefaultSnapshot()
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": snap.Value(key)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": json.RawMessage(payload)})
}

func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !knownKey(key) {
		writeError(w, apperr.Newf(apperr.KindNotFound, "unknown settings key %q", key))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "unreadable request body", err))
		return
	}
	if err := h.store.Upsert(r.Context(), key, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
