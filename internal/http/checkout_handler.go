package http

import (
	"encoding/json"
	"net/http"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/checkout"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkoutService}
}

type CheckoutRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number"`
	CardExpiry    string `json:"card_expiry"`
	CardCVV       string `json:"card_cvv"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.Checkout(r.Context(), sessionID, checkout.Request{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		CardNumber:    req.CardNumber,
		CardExpiry:    req.CardExpiry,
		CardCVV:       req.CardCVV,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newOrderResponse(order))
}
