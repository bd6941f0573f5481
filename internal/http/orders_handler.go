package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/checkout"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

type OrdersHandler struct {
	checkout *checkout.Service
}

func NewOrdersHandler(checkoutService *checkout.Service) *OrdersHandler {
	return &OrdersHandler{checkout: checkoutService}
}

type OrderItemDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderResponseDTO struct {
	ID            string         `json:"id"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	Status        string         `json:"status"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     string         `json:"created_at"`
}

func newOrderResponse(o *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return OrderResponseDTO{
		ID:            o.ID,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		Status:        o.Status.String(),
		Items:         items,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	orders, err := h.checkout.ListOrders(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, newOrderResponse(&orders[i]))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id is required")
		return
	}

	order, err := h.checkout.GetOrder(r.Context(), sessionID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newOrderResponse(order))
}
