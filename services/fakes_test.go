package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gummy-store/libs"
	"gummy-store/models"

	"github.com/google/uuid"
)

type fakeCheckouts struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]models.CheckoutAttempt
	saves    int
}

func newFakeCheckouts() *fakeCheckouts {
	return &fakeCheckouts{attempts: map[uuid.UUID]models.CheckoutAttempt{}}
}

func (f *fakeCheckouts) Get(_ context.Context, id uuid.UUID) (*models.CheckoutAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (f *fakeCheckouts) FindByOrder(_ context.Context, orderID uuid.UUID) (*models.CheckoutAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attempts {
		if a.OrderID != nil && *a.OrderID == orderID {
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCheckouts) Create(_ context.Context, a *models.CheckoutAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[a.ID] = *a
	return nil
}

func (f *fakeCheckouts) Save(_ context.Context, a *models.CheckoutAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.attempts[a.ID]; !ok {
		return models.ErrNotFound
	}
	f.saves++
	f.attempts[a.ID] = *a
	return nil
}

func (f *fakeCheckouts) MarkConfirmedByOrder(_ context.Context, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.attempts {
		if a.OrderID != nil && *a.OrderID == orderID {
			a.Stage = models.StagePaymentConfirmed
			f.attempts[id] = a
		}
	}
	return nil
}

type fakeAddresses struct {
	mu        sync.Mutex
	addresses map[uuid.UUID]models.Address
	err       error
}

func newFakeAddresses() *fakeAddresses {
	return &fakeAddresses{addresses: map[uuid.UUID]models.Address{}}
}

func (f *fakeAddresses) Create(_ context.Context, a *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.addresses[a.ID] = *a
	return nil
}

func (f *fakeAddresses) FindByID(_ context.Context, id uuid.UUID) (*models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.addresses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAddresses) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.addresses)
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
	err    error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[uuid.UUID]models.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	o.ID = uuid.New()
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) FindByPaymentID(_ context.Context, paymentID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.PaymentID == paymentID {
			return &o, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeOrders) MarkPaid(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != models.OrderStatusPending {
		return false, nil
	}
	o.Status = models.OrderStatusPaid
	f.orders[id] = o
	return true, nil
}

func (f *fakeOrders) add(o models.Order) models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	f.orders[o.ID] = o
	return o
}

func (f *fakeOrders) all() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out
}

type fakePix struct {
	mu        sync.Mutex
	requests  []libs.PixCreateRequest
	createErr error
	payment   libs.PixPayment
	status    string
	statusErr error
	checks    int
}

func (f *fakePix) CreatePayment(_ context.Context, in libs.PixCreateRequest) (*libs.PixPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := f.payment
	return &p, nil
}

func (f *fakePix) PaymentStatus(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.status, f.statusErr
}

func (f *fakePix) setStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakePix) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeCard struct {
	mu        sync.Mutex
	requests  []libs.CardIntentRequest
	intent    libs.CardIntent
	createErr error
	status    string
	statusErr error
}

func (f *fakeCard) CreateIntent(_ context.Context, in libs.CardIntentRequest) (*libs.CardIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	i := f.intent
	return &i, nil
}

func (f *fakeCard) IntentStatus(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.statusErr
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (f *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	paid []uuid.UUID
}

func (f *fakeNotifier) OrderPaid(_ context.Context, order *models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, order.ID)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paid)
}

type fakeCartStore struct {
	items   []models.CartItem
	added   []models.CartItem
	listErr error
	found   bool
}

func (f *fakeCartStore) ListBySession(_ context.Context, _ string) ([]models.CartItem, error) {
	return f.items, f.listErr
}

func (f *fakeCartStore) Add(_ context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	f.added = append(f.added, *item)
	return nil
}

func (f *fakeCartStore) UpdateQuantity(_ context.Context, _ string, _ uuid.UUID, _ int) (bool, error) {
	return f.found, nil
}

func (f *fakeCartStore) Remove(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	return f.found, nil
}

func (f *fakeCartStore) Clear(_ context.Context, _ string) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeConversations struct {
	conv    *models.Conversation
	touched int
}

func (f *fakeConversations) FindLatest(_ context.Context, _ string) (*models.Conversation, error) {
	if f.conv == nil {
		return nil, models.ErrNotFound
	}
	c := *f.conv
	return &c, nil
}

func (f *fakeConversations) Create(_ context.Context, sessionID string) (*models.Conversation, error) {
	f.conv = &models.Conversation{ID: uuid.New(), SessionID: sessionID, CreatedAt: time.Now()}
	c := *f.conv
	return &c, nil
}

func (f *fakeConversations) Touch(_ context.Context, _ uuid.UUID) error {
	f.touched++
	return nil
}

type fakeMessages struct {
	messages  []models.Message
	appendErr func(role string) error
}

func (f *fakeMessages) Append(_ context.Context, conversationID uuid.UUID, role, content string) (*models.Message, error) {
	if f.appendErr != nil {
		if err := f.appendErr(role); err != nil {
			return nil, err
		}
	}
	m := models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
		Persisted:      true,
	}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *fakeMessages) List(_ context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCompleter struct {
	reply   string
	err     error
	history []models.ChatTurn
	message string
}

func (f *fakeCompleter) Complete(_ context.Context, history []models.ChatTurn, message string) (string, error) {
	f.history = history
	f.message = message
	return f.reply, f.err
}

var errBoom = errors.New("boom")
