package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/service"
)

type WishlistHandler struct {
	wishSvc service.WishlistService
}

func NewWishlistHandler(wishSvc service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishSvc: wishSvc}
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	saved, err := h.wishSvc.Toggle(r.Context(), claims.UserID, mux.Vars(r)["propertyId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	list, err := h.wishSvc.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
