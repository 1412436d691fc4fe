package services

import (
	"context"
	"testing"
	"time"

	"gummy-store/libs"
	"gummy-store/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	orders    *fakeOrders
	checkouts *fakeCheckouts
	pix       *fakePix
	card      *fakeCard
	notifier  *fakeNotifier
	svc       *PaymentService
	session   models.Session
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		orders:    newFakeOrders(),
		checkouts: newFakeCheckouts(),
		pix:       &fakePix{},
		card:      &fakeCard{},
		notifier:  &fakeNotifier{},
		session:   models.Session{ID: "sess_pay"},
	}
	f.svc = NewPaymentService(f.orders, f.checkouts, f.pix, f.card, f.notifier, 0)
	return f
}

// placed records an order as the checkout flow leaves it.
func (f *paymentFixture) placed(t *testing.T, method, paymentID string) models.Order {
	t.Helper()
	order := f.orders.add(models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: method,
		PaymentID:     paymentID,
	})
	orderID := order.ID
	require.NoError(t, f.checkouts.Create(t.Context(), &models.CheckoutAttempt{
		ID:            uuid.New(),
		SessionID:     f.session.ID,
		PaymentMethod: method,
		Stage:         models.StageOrderRecorded,
		OrderID:       &orderID,
	}))
	return order
}

func TestConfirmCard(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		statusErr  error
		wantStatus string
		wantErr    func(t *testing.T, err error)
	}{
		{
			name:       "succeeded intent marks paid",
			status:     "succeeded",
			wantStatus: models.OrderStatusPaid,
		},
		{
			name:       "processing intent stays pending",
			status:     "processing",
			wantStatus: models.OrderStatusPending,
			wantErr: func(t *testing.T, err error) {
				var cse *models.CardStatusError
				require.ErrorAs(t, err, &cse)
				assert.Equal(t, "processing", cse.IntentStatus)
				assert.ErrorIs(t, err, models.ErrPaymentNotConfirmed)
			},
		},
		{
			name:       "provider failure stays pending",
			statusErr:  &models.ProviderError{Provider: "stripe", Message: "down"},
			wantStatus: models.OrderStatusPending,
			wantErr: func(t *testing.T, err error) {
				var pe *models.ProviderError
				assert.ErrorAs(t, err, &pe)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture()
			f.card.status = tt.status
			f.card.statusErr = tt.statusErr
			order := f.placed(t, models.PaymentMethodCard, "pi_1")

			got, err := f.svc.ConfirmCard(t.Context(), f.session, order.ID)
			if tt.wantErr != nil {
				tt.wantErr(t, err)
				assert.Zero(t, f.notifier.count())
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.OrderStatusPaid, got.Status)
				assert.Equal(t, 1, f.notifier.count())
			}

			stored, err := f.orders.FindByID(t.Context(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
		})
	}
}

func TestConfirmCardGuards(t *testing.T) {
	f := newPaymentFixture()
	f.card.status = "succeeded"
	card := f.placed(t, models.PaymentMethodCard, "pi_1")
	pix := f.placed(t, models.PaymentMethodPix, "pix_1")

	_, err := f.svc.ConfirmCard(t.Context(), models.Session{ID: "sess_other"}, card.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.ConfirmCard(t.Context(), f.session, pix.ID)
	assert.ErrorIs(t, err, models.ErrInvalidPayment)

	_, err = f.svc.ConfirmCard(t.Context(), f.session, card.ID)
	require.NoError(t, err)
	again, err := f.svc.ConfirmCard(t.Context(), f.session, card.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, again.Status)
	assert.Equal(t, 1, f.notifier.count(), "notified once")
}

func TestConfirmCardHonoursContext(t *testing.T) {
	f := newPaymentFixture()
	f.svc.confirmDelay = time.Hour
	order := f.placed(t, models.PaymentMethodCard, "pi_1")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.svc.ConfirmCard(ctx, f.session, order.ID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckPix(t *testing.T) {
	f := newPaymentFixture()
	order := f.placed(t, models.PaymentMethodPix, "pix_1")

	f.pix.statusErr = errBoom
	result := f.svc.CheckPix(t.Context(), "pix_1")
	assert.True(t, result.VerificationPending)
	assert.False(t, result.Completed)

	f.pix.statusErr = nil
	f.pix.status = "pending"
	result = f.svc.CheckPix(t.Context(), "pix_1")
	assert.True(t, result.VerificationPending)
	assert.Equal(t, "pending", result.Status)

	f.pix.status = libs.PixStatusCompleted
	result = f.svc.CheckPix(t.Context(), "pix_1")
	assert.True(t, result.Completed)
	assert.False(t, result.VerificationPending)

	result = f.svc.CheckPix(t.Context(), "pix_1")
	assert.True(t, result.Completed)

	stored, err := f.orders.FindByID(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
	assert.Equal(t, 1, f.notifier.count())

	attempt, err := f.checkouts.FindByOrder(t.Context(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StagePaymentConfirmed, attempt.Stage)
}

func TestPixExpiry(t *testing.T) {
	f := newPaymentFixture()
	expires := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	withExpiry := f.placed(t, models.PaymentMethodPix, "pix_exp")
	withExpiry.PaymentExpiresAt = &expires
	f.orders.add(withExpiry)
	f.placed(t, models.PaymentMethodPix, "pix_noexp")
	f.placed(t, models.PaymentMethodCard, "pi_1")

	got, err := f.svc.PixExpiry(t.Context(), f.session, "pix_exp")
	require.NoError(t, err)
	assert.True(t, expires.Equal(got))

	got, err = f.svc.PixExpiry(t.Context(), f.session, "pix_noexp")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = f.svc.PixExpiry(t.Context(), f.session, "pi_1")
	assert.ErrorIs(t, err, models.ErrInvalidPayment)

	_, err = f.svc.PixExpiry(t.Context(), f.session, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPixPaymentForOtherSession(t *testing.T) {
	f := newPaymentFixture()
	order := f.placed(t, models.PaymentMethodPix, "pix_1")

	got, err := f.svc.PixPaymentFor(t.Context(), f.session, "pix_1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.svc.PixPaymentFor(t.Context(), models.Session{ID: "sess_other"}, "pix_1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.PixExpiry(t.Context(), models.Session{ID: "sess_other"}, "pix_1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	orphan := f.orders.add(models.Order{PaymentMethod: models.PaymentMethodPix, PaymentID: "pix_orphan"})
	_, err = f.svc.PixPaymentFor(t.Context(), f.session, orphan.PaymentID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
