package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/kv"
)

func TestStore_Cart_EmptyByDefault(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())

	cart, err := store.Cart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestStore_Cart_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	cart := &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Name: "Smartphone Premium", Price: 1299.99, Quantity: 2},
		{ProductID: 3, Name: "Fone Bluetooth", Price: 199.99, Quantity: 1},
	}}
	require.NoError(t, store.SaveCart(ctx, "s1", cart))

	loaded, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, loaded.Items)

	// Repeated save/load cycles with no mutation must be idempotent.
	require.NoError(t, store.SaveCart(ctx, "s1", loaded))
	again, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, again.Items)
}

func TestStore_Customer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	_, err := store.Customer(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoCustomer)

	customer := &domain.Customer{
		Name:         "Maria Silva",
		Email:        "maria@example.com",
		Phone:        "(11) 91234-5678",
		CPF:          "111.444.777-35",
		PasswordHash: "$2a$10$fakehash",
		RegisteredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveCustomer(ctx, "s1", customer))

	loaded, err := store.Customer(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, customer, loaded)
}

func TestStore_ClearCustomer_KeepsCartAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	require.NoError(t, store.SaveCart(ctx, "s1", &domain.Cart{Items: []domain.CartItem{{ProductID: 1, Quantity: 1}}}))
	require.NoError(t, store.SaveCustomer(ctx, "s1", &domain.Customer{Email: "maria@example.com"}))
	require.NoError(t, store.SaveOrders(ctx, "s1", []domain.Order{{ID: "1"}}))

	require.NoError(t, store.ClearCustomer(ctx, "s1"))

	_, err := store.Customer(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoCustomer)

	cart, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	orders, err := store.Orders(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestStore_Orders_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	orders, err := store.Orders(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	history := []domain.Order{{
		ID:            "1756500000000",
		Items:         []domain.CartItem{{ProductID: 2, Name: "Notebook Gamer", Price: 2499.99, Quantity: 1}},
		Total:         2514.99,
		PaymentMethod: domain.PaymentMethodPix,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		CustomerEmail: "maria@example.com",
	}}
	require.NoError(t, store.SaveOrders(ctx, "s1", history))

	loaded, err := store.Orders(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	require.NoError(t, store.SaveCart(ctx, "s1", &domain.Cart{Items: []domain.CartItem{{ProductID: 1, Quantity: 2}}}))

	other, err := store.Cart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestStore_Cart_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	require.NoError(t, store.SaveCart(ctx, "s1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Name: "Smartphone Premium", Price: 1299.99, Quantity: 1},
	}}))

	first, err := store.Cart(ctx, "s1")
	require.NoError(t, err)

	// Mutating one caller's cart must not leak into another caller's load.
	first.Items[0].Quantity = 99
	first.Items = append(first.Items, domain.CartItem{ProductID: 2, Quantity: 1})

	second, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 1, second.Items[0].Quantity)
}

// slowStore delays reads so concurrent loads of the same key actually overlap,
// the way a redis or postgres backend would.
type slowStore struct {
	kv.Store
}

func (s slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Get(ctx, key)
}

func TestStore_Cart_ConcurrentReadersAndMutators(t *testing.T) {
	ctx := context.Background()
	store := NewStore(slowStore{kv.NewMemoryStore()})

	require.NoError(t, store.SaveCart(ctx, "s1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Quantity: 1},
	}}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do("s1", func() error {
				cart, err := store.Cart(ctx, "s1")
				if err != nil {
					return err
				}
				cart.Items[0].Quantity++
				return store.SaveCart(ctx, "s1", cart)
			})
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			cart, err := store.Cart(ctx, "s1")
			if err != nil {
				return
			}
			// Unlocked reader walking the items, like a GET /cart request.
			total := 0
			for _, item := range cart.Items {
				total += item.Quantity
			}
			_ = total
		}()
	}
	wg.Wait()

	cart, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 11, cart.Items[0].Quantity)
}

func TestStore_Do_SerializesMutations(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do("s1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
