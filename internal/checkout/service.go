// Package checkout owns the only transition from cart to order. The
// transition is atomic from the caller's perspective: either a confirmed
// order lands in the history and the cart is cleared, or neither happens.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/relay"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/session"
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrNotAuthenticated = errors.New("no customer registered for checkout")
	ErrOrderNotFound    = errors.New("order not found")
)

// InvalidPaymentError names the payment field that failed validation.
type InvalidPaymentError struct {
	Field   string
	Message string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Outbox is what the service needs from the relay layer.
type Outbox interface {
	Enqueue(payload interface{})
}

// Request carries the payment selection. Card fields are only read for
// credit/debit and are never persisted.
type Request struct {
	PaymentMethod domain.PaymentMethod
	CardNumber    string
	CardExpiry    string
	CardCVV       string
}

type Service struct {
	sessions *session.Store
	outbox   Outbox
}

func NewService(sessions *session.Store, outbox Outbox) *Service {
	return &Service{
		sessions: sessions,
		outbox:   outbox,
	}
}

// Checkout validates the cart, customer and payment details, then builds the
// order snapshot, appends it to the history and clears the cart. The payment
// relay payload is enqueued only after the local transition commits; the
// relay's outcome never reverses it.
func (s *Service) Checkout(ctx context.Context, sessionID string, req Request) (*domain.Order, error) {
	var order *domain.Order
	err := s.sessions.Do(sessionID, func() error {
		cart, err := s.sessions.Cart(ctx, sessionID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		customer, err := s.sessions.Customer(ctx, sessionID)
		if errors.Is(err, session.ErrNoCustomer) {
			return ErrNotAuthenticated
		}
		if err != nil {
			return err
		}

		if err := validatePayment(req); err != nil {
			return err
		}

		history, err := s.sessions.Orders(ctx, sessionID)
		if err != nil {
			return err
		}

		totals := cart.Totals()
		items := make([]domain.CartItem, len(cart.Items))
		copy(items, cart.Items)

		order = &domain.Order{
			ID:            nextOrderID(history),
			Items:         items,
			Total:         totals.Total,
			PaymentMethod: req.PaymentMethod,
			Status:        domain.OrderStatusConfirmed,
			CreatedAt:     time.Now(),
			CustomerEmail: customer.Email,
		}

		if err := s.sessions.SaveOrders(ctx, sessionID, append(history, *order)); err != nil {
			return err
		}
		if err := s.sessions.SaveCart(ctx, sessionID, &domain.Cart{}); err != nil {
			// Undo the appended order so no half-finished checkout is
			// observable after a reload.
			if rbErr := s.sessions.SaveOrders(ctx, sessionID, history); rbErr != nil {
				log.Printf("failed to roll back order history for session %v: %v", sessionID, rbErr)
			}
			return err
		}

		s.outbox.Enqueue(relay.NewPaymentPayload(customer, order, req.CardNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the session's order history, oldest first.
func (s *Service) ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.sessions.Orders(ctx, sessionID)
}

// GetOrder returns a single order from the session's history.
func (s *Service) GetOrder(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	history, err := s.sessions.Orders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].ID == orderID {
			return &history[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// nextOrderID derives a millisecond-timestamp id, bumped until it is unique
// within the session's history.
func nextOrderID(history []domain.Order) string {
	id := time.Now().UnixMilli()
	for historyContains(history, strconv.FormatInt(id, 10)) {
		id++
	}
	return strconv.FormatInt(id, 10)
}

func historyContains(history []domain.Order, id string) bool {
	for i := range history {
		if history[i].ID == id {
			return true
		}
	}
	return false
}

func validatePayment(req Request) error {
	if !req.PaymentMethod.Known() {
		return &InvalidPaymentError{Field: "payment_method", Message: "unknown payment method"}
	}

	if !req.PaymentMethod.RequiresCard() {
		return nil
	}

	if countDigits(req.CardNumber) < 13 {
		return &InvalidPaymentError{Field: "card_number", Message: "card number must have at least 13 digits"}
	}

	parts := strings.SplitN(req.CardExpiry, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return &InvalidPaymentError{Field: "card_expiry", Message: "expiry must have the form MM/YY"}
	}

	if !isDigits(req.CardCVV) || len(req.CardCVV) < 3 || len(req.CardCVV) > 4 {
		return &InvalidPaymentError{Field: "card_cvv", Message: "CVV must have 3 or 4 digits"}
	}

	return nil
}

func countDigits(s string) int {
	count := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			count++
		}
	}
	return count
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
