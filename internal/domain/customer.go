package domain

import "time"

// Customer is the session's registration record. PasswordHash is a bcrypt
// hash; the clear password is never stored.
type Customer struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CPF          string    `json:"cpf"`
	PasswordHash string    `json:"password_hash"`
	RegisteredAt time.Time `json:"registered_at"`
}
