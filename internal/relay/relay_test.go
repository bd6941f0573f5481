package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

func TestClient_Post_Success(t *testing.T) {
	var received RegistrationPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload := RegistrationPayload{Nome: "Maria Silva", Email: "maria@example.com", CPF: "111.444.777-35"}

	err := client.Post(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, payload, received)
}

func TestClient_Post_NonJSONContentTypeFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Post(context.Background(), RegistrationPayload{})
	assert.ErrorIs(t, err, ErrRelayFailed)
}

func TestClient_Post_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Post(context.Background(), RegistrationPayload{})
	assert.ErrorIs(t, err, ErrRelayFailed)
}

func TestClient_Post_HTMLErrorPageReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>server error</html>"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Post(context.Background(), RegistrationPayload{})
	require.ErrorIs(t, err, ErrRelayFailed)
	// The status is the diagnostic that matters, not the page's content type.
	assert.Contains(t, err.Error(), "status 500")
	assert.NotContains(t, err.Error(), "content type")
}

func TestClient_Post_UnreachableEndpointFails(t *testing.T) {
	err := NewClient("http://127.0.0.1:1").Post(context.Background(), RegistrationPayload{})
	assert.ErrorIs(t, err, ErrRelayFailed)
}

func TestOutbox_EnqueueDrain(t *testing.T) {
	outbox := NewOutbox()
	outbox.Enqueue(RegistrationPayload{Nome: "a"})
	outbox.Enqueue(RegistrationPayload{Nome: "b"})
	outbox.Enqueue(RegistrationPayload{Nome: "c"})

	first := outbox.Drain(2)
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].Payload.(RegistrationPayload).Nome)
	assert.Equal(t, "b", first[1].Payload.(RegistrationPayload).Nome)
	assert.NotEmpty(t, first[0].ID)

	rest := outbox.Drain(10)
	require.Len(t, rest, 1)
	assert.Equal(t, "c", rest[0].Payload.(RegistrationPayload).Nome)

	assert.Empty(t, outbox.Drain(10))
	assert.Equal(t, 0, outbox.Len())
}

type posterMock struct {
	mu       sync.Mutex
	payloads []interface{}
	err      error
}

func (m *posterMock) Post(_ context.Context, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, payload)
	return m.err
}

func (m *posterMock) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

func TestDispatcher_PostsAndRetires(t *testing.T) {
	outbox := NewOutbox()
	poster := &posterMock{}
	d := NewDispatcher(outbox, poster)

	outbox.Enqueue(RegistrationPayload{Nome: "a"})
	outbox.Enqueue(PaymentPayload{PedidoID: "1"})

	d.processPending(context.Background())

	assert.Equal(t, 2, poster.count())
	assert.Equal(t, 0, outbox.Len())
}

func TestDispatcher_FailedDeliveryIsNotRetried(t *testing.T) {
	outbox := NewOutbox()
	poster := &posterMock{err: errors.New("boom")}
	d := NewDispatcher(outbox, poster)

	outbox.Enqueue(RegistrationPayload{Nome: "a"})

	d.processPending(context.Background())
	assert.Equal(t, 0, outbox.Len(), "failed delivery must be retired, not requeued")

	d.processPending(context.Background())
	assert.Equal(t, 1, poster.count(), "delivery must be attempted exactly once")
}

func TestDispatcher_RunFlushesOnShutdown(t *testing.T) {
	outbox := NewOutbox()
	poster := &posterMock{}
	d := NewDispatcher(outbox, poster)
	d.tick = time.Hour // ensure only the shutdown path flushes

	outbox.Enqueue(RegistrationPayload{Nome: "a"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.Equal(t, 1, poster.count())
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** 1111", MaskCardNumber("4111 1111 1111 1111"))
	assert.Equal(t, "**** 123", MaskCardNumber("123"))
	assert.Equal(t, "N/A", MaskCardNumber(""))
}

func TestNewPaymentPayload_MasksCardAndEncodesItems(t *testing.T) {
	customer := &domain.Customer{Name: "Maria Silva", Email: "maria@example.com", CPF: "111.444.777-35"}
	order := &domain.Order{
		ID:            "1756500000000",
		Items:         []domain.CartItem{{ProductID: 1, Name: "Smartphone Premium", Price: 1299.99, Quantity: 1}},
		Total:         1314.99,
		PaymentMethod: domain.PaymentMethodCredit,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     time.Now(),
	}

	payload := NewPaymentPayload(customer, order, "4111 1111 1111 1111")

	assert.Equal(t, "**** 1111", payload.NumeroCartao)
	assert.Equal(t, "credit", payload.FormaPagamento)
	assert.Equal(t, 1314.99, payload.ValorTotal)

	var items []domain.CartItem
	require.NoError(t, json.Unmarshal([]byte(payload.ItensPedido), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Smartphone Premium", items[0].Name)
}
