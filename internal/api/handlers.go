/**
 * @description
 * HTTP handlers for the dashboard service. Handlers parse requests, call
 * the application services, and translate sentinel errors into status codes
 * and machine-readable reason codes the UI can turn into toasts.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshay12-del/subzz/internal/app"
	"github.com/akshay12-del/subzz/internal/domain"
)

// Handler holds the application services that handlers interact with.
type Handler struct {
	auth     *app.AuthService
	wallet   *app.WalletService
	subs     *app.SubscriptionService
	catalog  *app.CatalogService
	settings *app.SettingsService
}

// NewHandler creates a new Handler over the given services.
func NewHandler(auth *app.AuthService, wallet *app.WalletService, subs *app.SubscriptionService, catalog *app.CatalogService, settings *app.SettingsService) *Handler {
	return &Handler{auth: auth, wallet: wallet, subs: subs, catalog: catalog, settings: settings}
}

// --- auth ---

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully",
		"user":    user,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// --- subscriptions ---

func (h *Handler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.subs.Subscriptions())
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req domain.NewSubscriptionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	sub, err := h.subs.Subscribe(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handlePauseSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Pause(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleResumeSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Resume(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sub)
}

// --- wallet ---

func (h *Handler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{"balance": h.wallet.Balance()})
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.wallet.Transactions())
}

func (h *Handler) handleTopUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.wallet.AddFunds(r.Context(), req.Amount); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Funds added to wallet",
		"balance": h.wallet.Balance(),
	})
}

func (h *Handler) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.wallet.RedeemFunds(r.Context(), req.Amount); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Funds redeemed from wallet",
		"balance": h.wallet.Balance(),
	})
}

// --- regional services ---

func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	typ := r.URL.Query().Get("type")
	respondWithJSON(w, http.StatusOK, h.catalog.Services(q, typ))
}

func (h *Handler) handleServiceSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	msg, err := h.catalog.SubscribeToPlan(r.Context(), chi.URLParam(r, "id"), req.Plan)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) handleServiceRecharge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	msg, err := h.catalog.Recharge(r.Context(), chi.URLParam(r, "id"), req.Plan)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) handleServiceExplore(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.Explore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, svc)
}

// --- bundles ---

func (h *Handler) handleListBundles(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Bundles())
}

func (h *Handler) handleApplyBundle(w http.ResponseWriter, r *http.Request) {
	msg, err := h.catalog.ApplyBundle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"message": msg})
}

// --- settings ---

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.settings.Get())
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	settings, err := h.settings.Update(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// --- helpers ---

// respondWithAppError maps application sentinel errors to HTTP status codes
// and reason codes.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInsufficientFunds):
		respondWithError(w, http.StatusBadRequest, "insufficient_funds", err.Error())
	case errors.Is(err, app.ErrInvalidAmount),
		errors.Is(err, app.ErrAmountExceedsCap),
		errors.Is(err, app.ErrInvalidBillingCycle),
		errors.Is(err, app.ErrMissingName),
		errors.Is(err, app.ErrInvalidTheme),
		errors.Is(err, app.ErrInvalidFontScale),
		errors.Is(err, app.ErrMissingFields),
		errors.Is(err, app.ErrPasswordTooShort):
		respondWithError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, app.ErrSubscriptionNotFound),
		errors.Is(err, app.ErrServiceNotFound),
		errors.Is(err, app.ErrPlanNotFound),
		errors.Is(err, app.ErrBundleNotFound):
		respondWithError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, app.ErrUsernameTaken):
		respondWithError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
	}
}

func respondWithError(w http.ResponseWriter, code int, reason, message string) {
	respondWithJSON(w, code, map[string]string{"reason": reason, "error": message})
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
