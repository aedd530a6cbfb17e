package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/domain"
	"darna-backend/internal/security"
	"darna-backend/internal/service"
	"darna-backend/internal/settings"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Property      *PropertyHandler
	Booking       *BookingHandler
	Withdrawal    *WithdrawalHandler
	Conversation  *ConversationHandler
	Wishlist      *WishlistHandler
	Notification  *NotificationHandler
	Settings      *SettingsHandler
	Tokens        security.TokenManager
	SettingsStore *settings.Store
}

func NewHandlers(
	authSvc service.AuthService,
	propSvc service.PropertyService,
	bookingSvc service.BookingService,
	withdrawalSvc service.WithdrawalService,
	convSvc service.ConversationService,
	wishSvc service.WishlistService,
	noteSvc service.NotificationService,
	tokens security.TokenManager,
	settingsStore *settings.Store,
) *Handlers {
	return &Handlers{
		Auth:          NewAuthHandler(authSvc),
		Property:      NewPropertyHandler(propSvc, settingsStore),
		Booking:       NewBookingHandler(bookingSvc),
		Withdrawal:    NewWithdrawalHandler(withdrawalSvc),
		Conversation:  NewConversationHandler(convSvc),
		Wishlist:      NewWishlistHandler(wishSvc),
		Notification:  NewNotificationHandler(noteSvc),
		Settings:      NewSettingsHandler(settingsStore),
		Tokens:        tokens,
		SettingsStore: settingsStore,
	}
}

// NewRouter wires all routes under /api/v1. The maintenance gate sits after
// authentication so the admin bypass sees the resolved role; the auth login
// route stays reachable while maintenance is on.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: optional authentication, maintenance-gated.
	public := api.NewRoute().Subrouter()
	public.Use(Authenticate(h.Tokens, false))
	public.Use(Maintenance(h.SettingsStore))
	public.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	public.HandleFunc("/properties", h.Property.Browse).Methods(http.MethodGet)
	public.HandleFunc("/properties/{id}", h.Property.Get).Methods(http.MethodGet)

	// Authenticated routes.
	auth := api.NewRoute().Subrouter()
	auth.Use(Authenticate(h.Tokens, true))
	auth.Use(Maintenance(h.SettingsStore))

	auth.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/mine", h.Booking.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}/cancel", h.Booking.Cancel).Methods(http.MethodPost)

	auth.HandleFunc("/wishlist", h.Wishlist.List).Methods(http.MethodGet)
	auth.HandleFunc("/wishlist/{propertyId}", h.Wishlist.Toggle).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	auth.HandleFunc("/conversations", h.Conversation.Start).Methods(http.MethodPost)
	auth.HandleFunc("/conversations", h.Conversation.List).Methods(http.MethodGet)
	auth.HandleFunc("/conversations/{id}/messages", h.Conversation.SendMessage).Methods(http.MethodPost)
	auth.HandleFunc("/conversations/{id}/messages", h.Conversation.Messages).Methods(http.MethodGet)

	// Host routes.
	host := auth.NewRoute().Subrouter()
	host.Use(RequireRole(domain.RoleHost, domain.RoleAdmin))
	host.HandleFunc("/properties", h.Property.Create).Methods(http.MethodPost)
	host.HandleFunc("/properties/mine", h.Property.ListMine).Methods(http.MethodGet)
	host.HandleFunc("/properties/{id}", h.Property.Update).Methods(http.MethodPut)
	host.HandleFunc("/properties/{id}", h.Property.Delete).Methods(http.MethodDelete)
	host.HandleFunc("/properties/{id}/submit", h.Property.Submit).Methods(http.MethodPost)
	host.HandleFunc("/bookings/hosted", h.Booking.ListForHost).Methods(http.MethodGet)
	host.HandleFunc("/bookings/{id}/confirm", h.Booking.Confirm).Methods(http.MethodPost)
	host.HandleFunc("/bookings/{id}/complete", h.Booking.Complete).Methods(http.MethodPost)
	host.HandleFunc("/withdrawals", h.Withdrawal.Create).Methods(http.MethodPost)
	host.HandleFunc("/withdrawals/mine", h.Withdrawal.ListMine).Methods(http.MethodGet)
	host.HandleFunc("/earnings", h.Withdrawal.Earnings).Methods(http.MethodGet)
	host.HandleFunc("/payment-accounts", h.Withdrawal.AddPaymentAccount).Methods(http.MethodPost)
	host.HandleFunc("/payment-accounts", h.Withdrawal.ListPaymentAccounts).Methods(http.MethodGet)

	// Admin routes.
	admin := auth.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/properties/pending", h.Property.ModerationQueue).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{id}/approve", h.Property.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id}/reject", h.Property.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/withdrawals/pending", h.Withdrawal.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/withdrawals/{id}/approve", h.Withdrawal.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/withdrawals/{id}/complete", h.Withdrawal.Complete).Methods(http.MethodPost)
	admin.HandleFunc("/withdrawals/{id}/reject", h.Withdrawal.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/conversations/{id}/close", h.Conversation.Close).Methods(http.MethodPost)
	admin.HandleFunc("/conversations/{id}/reopen", h.Conversation.Reopen).Methods(http.MethodPost)
	admin.HandleFunc("/settings/{key}", h.Settings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{key}", h.Settings.Upsert).Methods(http.MethodPut)

	return r
}
