package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/domain"
	"darna-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type bookingRequest struct {
	PropertyID   string `json:"property_id" validate:"required"`
	CheckInDate  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	GuestCount   int32  `json:"guest_count" validate:"required,gt=0"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	b, err := h.bookingSvc.RequestBooking(r.Context(), claims.UserID, req.PropertyID, req.CheckInDate, req.CheckOutDate, req.GuestCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	b, err := h.bookingSvc.Confirm(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	b, err := h.bookingSvc.Complete(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	b, err := h.bookingSvc.Cancel(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	b, err := h.bookingSvc.GetBooking(r.Context(), claims.UserID, claims.Role, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	bucket := domain.BookingBucket(r.URL.Query().Get("bucket"))
	list, total, err := h.bookingSvc.MyBookings(r.Context(), claims.UserID, bucket, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}

func (h *BookingHandler) ListForHost(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	bucket := domain.BookingBucket(r.URL.Query().Get("bucket"))
	list, total, err := h.bookingSvc.HostBookings(r.Context(), claims.UserID, bucket, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}
