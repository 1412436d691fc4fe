package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gummy-store/libs"
	"gummy-store/models"

	"github.com/google/uuid"
)

const intentSucceeded = "succeeded"

type PaymentService struct {
	orders       OrderStore
	checkouts    CheckoutStore
	pix          PixProvider
	card         CardGateway
	notifier     Notifier
	confirmDelay time.Duration
}

func NewPaymentService(orders OrderStore, checkouts CheckoutStore, pix PixProvider, card CardGateway, notifier Notifier, confirmDelay time.Duration) *PaymentService {
	return &PaymentService{
		orders:       orders,
		checkouts:    checkouts,
		pix:          pix,
		card:         card,
		notifier:     notifier,
		confirmDelay: confirmDelay,
	}
}

// CheckPix asks the provider for the payment status and marks the order
// paid when it completed. Anything but completed, including a provider
// failure, comes back as pending verification.
func (s *PaymentService) CheckPix(ctx context.Context, paymentID string) models.PixCheckResult {
	result := models.PixCheckResult{PaymentID: paymentID, Status: models.OrderStatusPending}

	status, err := s.pix.PaymentStatus(ctx, paymentID)
	if err != nil {
		log.Printf("[payment] pix status %s: %v", paymentID, err)
		result.VerificationPending = true
		return result
	}
	if status != "" {
		result.Status = status
	}

	if status != libs.PixStatusCompleted {
		result.VerificationPending = true
		return result
	}

	result.Completed = true
	order, err := s.orders.FindByPaymentID(ctx, paymentID)
	if err != nil {
		log.Printf("[payment] no order for pix payment %s: %v", paymentID, err)
		return result
	}
	if err := s.markPaid(ctx, order); err != nil {
		log.Printf("[payment] mark order %s paid: %v", order.ID, err)
	}
	return result
}

// PixPaymentFor returns the PIX order behind paymentID when session placed
// it. Payments of other sessions look like missing ones.
func (s *PaymentService) PixPaymentFor(ctx context.Context, session models.Session, paymentID string) (*models.Order, error) {
	order, err := s.orders.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.checkouts.FindByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if attempt.SessionID != session.ID {
		return nil, models.ErrNotFound
	}
	if order.PaymentMethod != models.PaymentMethodPix {
		return nil, models.ErrInvalidPayment
	}
	return order, nil
}

// PixExpiry returns when the session's PIX charge expires. A zero time means
// the provider gave no expiry.
func (s *PaymentService) PixExpiry(ctx context.Context, session models.Session, paymentID string) (time.Time, error) {
	order, err := s.PixPaymentFor(ctx, session, paymentID)
	if err != nil {
		return time.Time{}, err
	}
	if order.PaymentExpiresAt == nil {
		return time.Time{}, nil
	}
	return *order.PaymentExpiresAt, nil
}

// ConfirmCard waits briefly for the provider to settle and marks the order
// paid only when its payment intent succeeded.
func (s *PaymentService) ConfirmCard(ctx context.Context, session models.Session, orderID uuid.UUID) (*models.Order, error) {
	attempt, err := s.checkouts.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if attempt.SessionID != session.ID {
		return nil, models.ErrNotFound
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != models.PaymentMethodCard {
		return nil, models.ErrInvalidPayment
	}
	if order.Status == models.OrderStatusPaid {
		return order, nil
	}

	if s.confirmDelay > 0 {
		timer := time.NewTimer(s.confirmDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	status, err := s.card.IntentStatus(ctx, order.PaymentID)
	if err != nil {
		return nil, err
	}
	if status != intentSucceeded {
		return nil, &models.CardStatusError{IntentStatus: status}
	}

	if err := s.markPaid(ctx, order); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusPaid
	return order, nil
}

// markPaid moves the order to paid once; only the first caller notifies.
func (s *PaymentService) markPaid(ctx context.Context, order *models.Order) error {
	changed, err := s.orders.MarkPaid(ctx, order.ID)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	order.Status = models.OrderStatusPaid
	if err := s.checkouts.MarkConfirmedByOrder(ctx, order.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("[payment] confirm checkout for order %s: %v", order.ID, err)
	}
	if s.notifier != nil {
		s.notifier.OrderPaid(ctx, order)
	}
	return nil
}
