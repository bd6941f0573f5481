// Package session persists per-session storefront state (cart, customer,
// order history) through the key-value adapter. Each structure lives under its
// own key so a reload after any completed operation observes current state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/kv"
)

var ErrNoCustomer = errors.New("no customer registered for session")

type Store struct {
	kv  kv.Store
	sfg singleflight.Group // dedupes concurrent loads of the same key

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(store kv.Store) *Store {
	return &Store{
		kv:    store,
		locks: make(map[string]*sync.Mutex),
	}
}

func cartKey(sessionID string) string     { return fmt.Sprintf("cart:%s", sessionID) }
func customerKey(sessionID string) string { return fmt.Sprintf("customer:%s", sessionID) }
func ordersKey(sessionID string) string   { return fmt.Sprintf("orders:%s", sessionID) }

// Do runs fn while holding the session's mutex. Every read-modify-write cycle
// against a session goes through here so concurrent requests cannot interleave
// between load and save.
func (s *Store) Do(sessionID string, fn func() error) error {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// Cart loads the session's cart. A session that never stored one gets an
// empty cart. The deduplicated load returns raw bytes and every caller
// unmarshals its own cart, so no two callers ever share cart memory.
func (s *Store) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(cartKey(sessionID), func() (interface{}, error) {
		data, err := s.kv.Get(ctx, cartKey(sessionID))
		if errors.Is(err, kv.ErrNotFound) {
			return []byte(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data := v.([]byte)
	if data == nil {
		return &domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (s *Store) SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.kv.Set(ctx, cartKey(sessionID), data); err != nil {
		return err
	}
	// Drop any in-flight load that started before this write; a loader holding
	// the session lock must never observe pre-write state.
	s.sfg.Forget(cartKey(sessionID))
	return nil
}

// Customer loads the session's registered customer, ErrNoCustomer when absent.
func (s *Store) Customer(ctx context.Context, sessionID string) (*domain.Customer, error) {
	data, err := s.kv.Get(ctx, customerKey(sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNoCustomer
	}
	if err != nil {
		return nil, err
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer failed: %w", err)
	}
	return &customer, nil
}

func (s *Store) SaveCustomer(ctx context.Context, sessionID string, customer *domain.Customer) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("marshal customer failed: %w", err)
	}
	return s.kv.Set(ctx, customerKey(sessionID), data)
}

// ClearCustomer implements logout. Cart and order history survive.
func (s *Store) ClearCustomer(ctx context.Context, sessionID string) error {
	return s.kv.Delete(ctx, customerKey(sessionID))
}

// Orders loads the session's order history, oldest first. A session that never
// checked out gets an empty history.
func (s *Store) Orders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	data, err := s.kv.Get(ctx, ordersKey(sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal orders failed: %w", err)
	}
	return orders, nil
}

func (s *Store) SaveOrders(ctx context.Context, sessionID string, orders []domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders failed: %w", err)
	}
	return s.kv.Set(ctx, ordersKey(sessionID), data)
}
