package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"darna-backend/internal/domain"
	"darna-backend/internal/pricing"
	"darna-backend/internal/repository"
	"darna-backend/internal/service"
	"darna-backend/internal/settings"
)

type PropertyHandler struct {
	propSvc  service.PropertyService
	settings *settings.Store
}

func NewPropertyHandler(propSvc service.PropertyService, settingsStore *settings.Store) *PropertyHandler {
	return &PropertyHandler{propSvc: propSvc, settings: settingsStore}
}

// propertyView decorates a listing with its formatted price in the caller's
// display currency. The stored DZD amount stays canonical.
type propertyView struct {
	domain.Property
	DisplayPrice string `json:"display_price"`
}

// formatter resolves the display language from the ?lang query parameter,
// falling back to the Accept-Language header, and binds the current exchange
// rates from settings.
func (h *PropertyHandler) formatter(r *http.Request) pricing.Formatter {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		raw = r.Header.Get("Accept-Language")
	}
	lang := pricing.ParseLanguage(raw)
	if snap, ok := h.settings.Snapshot(); ok {
		return pricing.NewFormatterWithRates(lang, snap.ExchangeRates)
	}
	return pricing.NewFormatter(lang)
}

func (h *PropertyHandler) view(r *http.Request, p *domain.Property) propertyView {
	f := h.formatter(r)
	return propertyView{
		Property:     *p,
		DisplayPrice: f.Format(float64(p.PriceDzd), pricing.PriceType(p.PriceType)),
	}
}

func (h *PropertyHandler) views(r *http.Request, list []domain.Property) []propertyView {
	f := h.formatter(r)
	out := make([]propertyView, 0, len(list))
	for i := range list {
		out = append(out, propertyView{
			Property:     list[i],
			DisplayPrice: f.Format(float64(list[i].PriceDzd), pricing.PriceType(list[i].PriceType)),
		})
	}
	return out
}

type propertyRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required,oneof=sale rent short-stay"`
	PriceDzd    int64    `json:"price_dzd" validate:"required,gt=0"`
	PriceType   string   `json:"price_type" validate:"omitempty,oneof=dailyPrice weeklyPrice monthlyPrice total"`
	Wilaya      string   `json:"wilaya" validate:"required"`
	Address     string   `json:"address"`
	Bedrooms    int32    `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int32    `json:"bathrooms" validate:"gte=0"`
	AreaSqm     int32    `json:"area_sqm" validate:"gte=0"`
	ImageURLs   []string `json:"image_urls" validate:"dive,url"`
	Publish     bool     `json:"publish"`
}

func (req *propertyRequest) toDomain() *domain.Property {
	return &domain.Property{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.PropertyCategory(req.Category),
		PriceDzd:    req.PriceDzd,
		PriceType:   req.PriceType,
		Wilaya:      req.Wilaya,
		Address:     req.Address,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
		ImageURLs:   req.ImageURLs,
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	p, err := h.propSvc.CreateListing(r.Context(), claims.UserID, req.toDomain(), req.Publish)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.propSvc.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(r, p))
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	p := req.toDomain()
	p.ID = mux.Vars(r)["id"]
	updated, err := h.propSvc.UpdateListing(r.Context(), claims.UserID, claims.Role, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if err := h.propSvc.DeleteListing(r.Context(), claims.UserID, claims.Role, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PropertyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	p, err := h.propSvc.Submit(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	p, err := h.propSvc.Approve(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *PropertyHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	p, err := h.propSvc.Reject(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filter := repository.PropertyFilter{
		Category: domain.PropertyCategory(r.URL.Query().Get("category")),
		Wilaya:   r.URL.Query().Get("wilaya"),
	}
	if v := r.URL.Query().Get("max_price_dzd"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			filter.MaxPriceDzd = n
		}
	}

	page, pageSize := pageParams(r)
	list, total, err := h.propSvc.Browse(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, h.views(r, list), total, page, pageSize)
}

func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	list, total, err := h.propSvc.ListMine(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}

func (h *PropertyHandler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	list, total, err := h.propSvc.ModerationQueue(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}
