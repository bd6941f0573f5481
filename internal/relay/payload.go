// Package relay mirrors registration and payment data to an external form
// endpoint. The endpoint is a side channel, never a system of record: business
// logic enqueues payloads into an outbox and a dispatcher posts them
// best-effort, so local state transitions never wait on, or roll back for,
// the relay.
package relay

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

// Field names follow the spreadsheet columns the endpoint expects.

type RegistrationPayload struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Telefone     string `json:"telefone"`
	CPF          string `json:"cpf"`
	DataCadastro string `json:"data_cadastro"`
}

type PaymentPayload struct {
	PedidoID       string  `json:"pedido_id"`
	ClienteNome    string  `json:"cliente_nome"`
	ClienteEmail   string  `json:"cliente_email"`
	ClienteCPF     string  `json:"cliente_cpf"`
	FormaPagamento string  `json:"forma_pagamento"`
	NumeroCartao   string  `json:"numero_cartao"`
	ValorTotal     float64 `json:"valor_total"`
	DataPagamento  string  `json:"data_pagamento"`
	ItensPedido    string  `json:"itens_pedido"`
}

func NewRegistrationPayload(customer *domain.Customer) RegistrationPayload {
	return RegistrationPayload{
		Nome:         customer.Name,
		Email:        customer.Email,
		Telefone:     customer.Phone,
		CPF:          customer.CPF,
		DataCadastro: customer.RegisteredAt.Format(time.RFC3339),
	}
}

func NewPaymentPayload(customer *domain.Customer, order *domain.Order, cardNumber string) PaymentPayload {
	items, err := json.Marshal(order.Items)
	if err != nil {
		items = []byte("[]")
	}

	return PaymentPayload{
		PedidoID:       order.ID,
		ClienteNome:    customer.Name,
		ClienteEmail:   customer.Email,
		ClienteCPF:     customer.CPF,
		FormaPagamento: string(order.PaymentMethod),
		NumeroCartao:   MaskCardNumber(cardNumber),
		ValorTotal:     order.Total,
		DataPagamento:  order.CreatedAt.Format(time.RFC3339),
		ItensPedido:    string(items),
	}
}

// MaskCardNumber keeps only the last four digits. Raw card numbers never
// leave the process.
func MaskCardNumber(cardNumber string) string {
	var digits strings.Builder
	for _, c := range cardNumber {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	s := digits.String()
	if s == "" {
		return "N/A"
	}
	if len(s) <= 4 {
		return "**** " + s
	}
	return "**** " + s[len(s)-4:]
}
