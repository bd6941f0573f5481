// Package customer handles registration, login and logout for the session's
// single customer record.
package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/cpf"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/relay"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError names the offending field so the UI can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Outbox is what the service needs from the relay layer.
type Outbox interface {
	Enqueue(payload interface{})
}

type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	CPF             string
	Password        string
	ConfirmPassword string
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

// Register validates the input, stores the customer (replacing any previous
// registration for the session) and enqueues the registration relay payload.
// The local registration commits regardless of the relay's eventual outcome.
// Passwords are stored only as bcrypt hashes.
func (s *Service) Register(ctx context.Context, sessionID string, input RegisterInput) (*domain.Customer, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &domain.Customer{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		CPF:          strings.TrimSpace(input.CPF),
		PasswordHash: string(hash),
		RegisteredAt: time.Now(),
	}

	err = s.sessions.Do(sessionID, func() error {
		return s.sessions.SaveCustomer(ctx, sessionID, customer)
	})
	if err != nil {
		return nil, err
	}

	s.outbox.Enqueue(relay.NewRegistrationPayload(customer))
	return customer, nil
}

// Login checks the given credentials against the session's stored customer.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*domain.Customer, error) {
	customer, err := s.sessions.Customer(ctx, sessionID)
	if errors.Is(err, session.ErrNoCustomer) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if customer.Email != strings.TrimSpace(email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return customer, nil
}

// Logout clears the session's customer. Cart and order history survive.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Do(sessionID, func() error {
		return s.sessions.ClearCustomer(ctx, sessionID)
	})
}

// Current returns the session's registered customer.
func (s *Service) Current(ctx context.Context, sessionID string) (*domain.Customer, error) {
	return s.sessions.Customer(ctx, sessionID)
}

func validateRegisterInput(input RegisterInput) error {
	if utf8.RuneCountInString(strings.TrimSpace(input.Name)) < 3 {
		return &ValidationError{Field: "name", Message: "name must have at least 3 characters"}
	}

	if !govalidator.IsEmail(strings.TrimSpace(input.Email)) {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}

	if countDigits(input.Phone) < 10 {
		return &ValidationError{Field: "phone", Message: "phone must have at least 10 digits"}
	}

	if !cpf.Valid(input.CPF) {
		return &ValidationError{Field: "cpf", Message: "invalid CPF"}
	}

	if len(input.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must have at least 6 characters"}
	}

	if input.Password != input.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
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
