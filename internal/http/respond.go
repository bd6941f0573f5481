package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/catalog"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/checkout"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/customer"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/session"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError converts the well-known service errors to HTTP status
// codes. Anything unrecognized is a 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *customer.ValidationError
	var paymentErr *checkout.InvalidPaymentError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "validation_error", validationErr.Error())
	case errors.As(err, &paymentErr):
		respondError(w, http.StatusBadRequest, "invalid_payment", paymentErr.Error())
	case errors.Is(err, customer.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, checkout.ErrNotAuthenticated), errors.Is(err, session.ErrNoCustomer):
		respondError(w, http.StatusUnauthorized, "not_authenticated", "customer registration required")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
	case errors.Is(err, checkout.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	default:
		log.Printf("unhandled service error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
