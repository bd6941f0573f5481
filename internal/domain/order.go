package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodBoleto PaymentMethod = "boleto"
	PaymentMethodCash   PaymentMethod = "cash"
)

// RequiresCard reports whether the method needs card number/expiry/CVV.
func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentMethodCredit || m == PaymentMethodDebit
}

// Known reports whether the method is one the checkout accepts.
func (m PaymentMethod) Known() bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPix, PaymentMethodBoleto, PaymentMethodCash:
		return true
	}
	return false
}

// Order is an immutable snapshot created at checkout. Items are copies of the
// cart lines at purchase time; the record is never mutated afterwards.
type Order struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	CustomerEmail string        `json:"customer_email"`
}
