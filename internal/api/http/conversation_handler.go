package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/domain"
	"darna-backend/internal/service"
)

type ConversationHandler struct {
	convSvc service.ConversationService
}

func NewConversationHandler(convSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convSvc: convSvc}
}

type startConversationRequest struct {
	Type           string   `json:"type" validate:"required,oneof=property_inquiry host_to_host support"`
	PropertyID     *string  `json:"property_id"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1"`
}

func (h *ConversationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	c, err := h.convSvc.Start(r.Context(), claims.UserID, domain.ConversationType(req.Type), req.PropertyID, req.ParticipantIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ConversationHandler) Close(w http.ResponseWriter, r *http.Request) {
	c, err := h.convSvc.Close(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ConversationHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	c, err := h.convSvc.Reopen(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	m, err := h.convSvc.SendMessage(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	list, total, err := h.convSvc.List(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}

func (h *ConversationHandler) Messages(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	list, total, err := h.convSvc.Messages(r.Context(), claims.UserID, claims.Role, mux.Vars(r)["id"], page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}
