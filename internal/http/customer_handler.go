package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/customer"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

type CustomerHandler struct {
	customers *customer.Service
}

func NewCustomerHandler(customerService *customer.Service) *CustomerHandler {
	return &CustomerHandler{customers: customerService}
}

type RegisterRequestDTO struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CPF             string `json:"cpf"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerResponseDTO never carries the password hash.
type CustomerResponseDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CPF          string `json:"cpf"`
	RegisteredAt string `json:"registered_at"`
}

func newCustomerResponse(c *domain.Customer) CustomerResponseDTO {
	return CustomerResponseDTO{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		CPF:          c.CPF,
		RegisteredAt: c.RegisteredAt.Format(time.RFC3339),
	}
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	registered, err := h.customers.Register(r.Context(), sessionID, customer.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CPF:             req.CPF,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newCustomerResponse(registered))
}

func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	loggedIn, err := h.customers.Login(r.Context(), sessionID, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCustomerResponse(loggedIn))
}

func (h *CustomerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	if err := h.customers.Logout(r.Context(), sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *CustomerHandler) Me(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	current, err := h.customers.Current(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCustomerResponse(current))
}
