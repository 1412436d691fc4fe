package controllers

import (
	"context"
	"sync"

	"gummy-store/libs"
	"gummy-store/middleware"
	"gummy-store/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func withSession(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, id)
		c.Next()
	}
}

type memCheckouts struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]models.CheckoutAttempt
}

func newMemCheckouts() *memCheckouts {
	return &memCheckouts{attempts: map[uuid.UUID]models.CheckoutAttempt{}}
}

func (m *memCheckouts) Get(_ context.Context, id uuid.UUID) (*models.CheckoutAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (m *memCheckouts) FindByOrder(_ context.Context, orderID uuid.UUID) (*models.CheckoutAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attempts {
		if a.OrderID != nil && *a.OrderID == orderID {
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memCheckouts) Create(_ context.Context, a *models.CheckoutAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.ID] = *a
	return nil
}

func (m *memCheckouts) Save(_ context.Context, a *models.CheckoutAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.ID] = *a
	return nil
}

func (m *memCheckouts) MarkConfirmedByOrder(_ context.Context, orderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.attempts {
		if a.OrderID != nil && *a.OrderID == orderID {
			a.Stage = models.StagePaymentConfirmed
			m.attempts[id] = a
		}
	}
	return nil
}

type memAddresses struct {
	mu        sync.Mutex
	addresses map[uuid.UUID]models.Address
}

func (m *memAddresses) Create(_ context.Context, a *models.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addresses == nil {
		m.addresses = map[uuid.UUID]models.Address{}
	}
	a.ID = uuid.New()
	m.addresses[a.ID] = *a
	return nil
}

func (m *memAddresses) FindByID(_ context.Context, id uuid.UUID) (*models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addresses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[uuid.UUID]models.Order{}}
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = uuid.New()
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &o, nil
}

func (m *memOrders) FindByPaymentID(_ context.Context, paymentID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.PaymentID == paymentID {
			return &o, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memOrders) MarkPaid(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != models.OrderStatusPending {
		return false, nil
	}
	o.Status = models.OrderStatusPaid
	m.orders[id] = o
	return true, nil
}

// scriptedPix answers status checks from statuses in turn and then keeps
// repeating the last one.
type scriptedPix struct {
	mu       sync.Mutex
	payment  libs.PixPayment
	statuses []string
	checks   int
}

func (p *scriptedPix) CreatePayment(context.Context, libs.PixCreateRequest) (*libs.PixPayment, error) {
	out := p.payment
	return &out, nil
}

func (p *scriptedPix) PaymentStatus(context.Context, string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks++
	if len(p.statuses) == 0 {
		return "pending", nil
	}
	i := min(p.checks, len(p.statuses)) - 1
	return p.statuses[i], nil
}

type silentNotifier struct{}

func (silentNotifier) OrderPaid(context.Context, *models.Order) {}

type memCart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func (m *memCart) ListBySession(_ context.Context, sessionID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CartItem
	for _, it := range m.items {
		if it.SessionID == sessionID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memCart) Add(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uuid.New()
	m.items = append(m.items, *item)
	return nil
}

func (m *memCart) UpdateQuantity(_ context.Context, sessionID string, id uuid.UUID, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id && it.SessionID == sessionID {
			m.items[i].Quantity = quantity
			return true, nil
		}
	}
	return false, nil
}

func (m *memCart) Remove(_ context.Context, sessionID string, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id && it.SessionID == sessionID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memCart) Clear(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var n int64
	for _, it := range m.items {
		if it.SessionID == sessionID {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return n, nil
}
