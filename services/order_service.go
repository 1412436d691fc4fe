package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gummy-store/libs"
	"gummy-store/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.CheckoutAttempt, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.CheckoutAttempt, error)
	Create(ctx context.Context, a *models.CheckoutAttempt) error
	Save(ctx context.Context, a *models.CheckoutAttempt) error
	MarkConfirmedByOrder(ctx context.Context, orderID uuid.UUID) error
}

type AddressStore interface {
	Create(ctx context.Context, a *models.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
}

type PixProvider interface {
	CreatePayment(ctx context.Context, in libs.PixCreateRequest) (*libs.PixPayment, error)
	PaymentStatus(ctx context.Context, paymentID string) (string, error)
}

type CardGateway interface {
	CreateIntent(ctx context.Context, in libs.CardIntentRequest) (*libs.CardIntent, error)
	IntentStatus(ctx context.Context, intentID string) (string, error)
}

const checkoutLockTTL = 2 * time.Minute

type OrderService struct {
	checkouts CheckoutStore
	addresses AddressStore
	orders    OrderStore
	pix       PixProvider
	card      CardGateway
	locker    Locker
}

func NewOrderService(checkouts CheckoutStore, addresses AddressStore, orders OrderStore, pix PixProvider, card CardGateway, locker Locker) *OrderService {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &OrderService{
		checkouts: checkouts,
		addresses: addresses,
		orders:    orders,
		pix:       pix,
		card:      card,
		locker:    locker,
	}
}

type orderLine struct {
	name     string
	price    decimal.Decimal
	flavor   string
	quantity int
}

func (l orderLine) total() decimal.Decimal {
	return l.price.Mul(decimal.NewFromInt(int64(l.quantity))).Round(2)
}

// resolveLine builds the order line from the catalog. Only the catalog
// product can be ordered and its price always comes from the catalog, so a
// price sent by the client is ignored.
func resolveLine(method string, p *models.OrderProduct) (orderLine, error) {
	line := orderLine{
		name:     models.GummyHair.Name,
		price:    models.GummyHair.PriceFor(method),
		flavor:   models.GummyHair.Flavors[0],
		quantity: 1,
	}
	if p == nil {
		return line, nil
	}

	if name := strings.TrimSpace(p.Name); name != "" && name != models.GummyHair.Name {
		return line, &models.ValidationError{Fields: models.FieldErrors{"product": "Produto indisponível"}}
	}
	if flavor := strings.TrimSpace(p.Flavor); flavor != "" {
		if !models.GummyHair.HasFlavor(flavor) {
			return line, &models.ValidationError{Fields: models.FieldErrors{"flavor": "Sabor indisponível"}}
		}
		line.flavor = flavor
	}
	if p.Quantity < 0 {
		return line, models.ErrInvalidQuantity
	}
	if p.Quantity > 0 {
		line.quantity = p.Quantity
	}
	return line, nil
}

// checkoutDigest fingerprints what a checkout charges for and where it
// ships. A retry under the same client order id must carry the same digest.
func checkoutDigest(method string, line orderLine, form models.CheckoutForm) string {
	h := sha256.New()
	for _, part := range []string{
		method,
		line.name,
		line.price.StringFixed(2),
		line.flavor,
		fmt.Sprint(line.quantity),
		form.FullName,
		form.Phone,
		form.Email,
		form.CEP,
		form.State,
		form.City,
		form.Street,
		form.Number,
		form.Complement,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PlaceOrder runs checkout as a resumable sequence keyed by the client
// order id: address, payment, order. Each step is recorded on the attempt
// and skipped when a retry finds it already done.
func (s *OrderService) PlaceOrder(ctx context.Context, session models.Session, req models.PlaceOrderRequest) (*models.CheckoutResult, error) {
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "creditcard" {
		method = models.PaymentMethodCard
	}
	if method != models.PaymentMethodPix && method != models.PaymentMethodCard {
		return nil, models.ErrInvalidPayment
	}

	if fields := ValidateCheckoutForm(req.Form); len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}
	form := MaskCheckoutForm(req.Form)

	line, err := resolveLine(method, req.Product)
	if err != nil {
		return nil, err
	}

	clientOrderID := req.ClientOrderID
	if clientOrderID == uuid.Nil {
		clientOrderID = uuid.New()
	}

	lockKey := "checkout:" + clientOrderID.String()
	acquired, err := s.locker.Acquire(ctx, lockKey, checkoutLockTTL)
	if err != nil {
		log.Printf("[checkout] lock unavailable for %s: %v", clientOrderID, err)
	} else if !acquired {
		return nil, models.ErrCheckoutInProgress
	} else {
		defer func() {
			if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
				log.Printf("[checkout] release lock %s: %v", clientOrderID, err)
			}
		}()
	}

	digest := checkoutDigest(method, line, form)
	attempt, err := s.loadAttempt(ctx, session, clientOrderID, method, digest)
	if err != nil {
		return nil, err
	}

	if !attempt.Reached(models.StageAddressCreated) {
		address := &models.Address{
			FullName:   form.FullName,
			Phone:      form.Phone,
			Email:      form.Email,
			Address:    FullAddress(form),
			CEP:        form.CEP,
			City:       form.City,
			State:      form.State,
			Street:     form.Street,
			Number:     form.Number,
			Complement: form.Complement,
		}
		if err := s.addresses.Create(ctx, address); err != nil {
			return nil, s.fail(ctx, attempt, fmt.Errorf("create address: %w", err))
		}
		attempt.AddressID = &address.ID
		attempt.Stage = models.StageAddressCreated
		if err := s.checkouts.Save(ctx, attempt); err != nil {
			return nil, err
		}
	}

	var payment models.PaymentInitiation
	if !attempt.Reached(models.StagePaymentInitiated) {
		initiated, err := s.initiatePayment(ctx, clientOrderID, method, form, line)
		if err != nil {
			return nil, s.fail(ctx, attempt, err)
		}
		payload, err := json.Marshal(initiated)
		if err != nil {
			return nil, fmt.Errorf("encode payment payload: %w", err)
		}
		payment = *initiated
		attempt.PaymentID = &payment.PaymentID
		attempt.PaymentPayload = payload
		attempt.Stage = models.StagePaymentInitiated
		attempt.LastError = nil
		if err := s.checkouts.Save(ctx, attempt); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(attempt.PaymentPayload, &payment); err != nil {
		return nil, fmt.Errorf("decode payment payload: %w", err)
	}

	var order *models.Order
	if !attempt.Reached(models.StageOrderRecorded) {
		order = &models.Order{
			AddressID:        *attempt.AddressID,
			ProductName:      line.name,
			ProductPrice:     line.price,
			ProductFlavor:    line.flavor,
			Quantity:         line.quantity,
			TotalPrice:       line.total(),
			Status:           models.OrderStatusPending,
			PaymentMethod:    method,
			PaymentID:        payment.PaymentID,
			PaymentExpiresAt: payment.ExpiresAt,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, s.fail(ctx, attempt, fmt.Errorf("create order: %w", err))
		}
		attempt.OrderID = &order.ID
		attempt.Stage = models.StageOrderRecorded
		if err := s.checkouts.Save(ctx, attempt); err != nil {
			return nil, err
		}
	} else {
		order, err = s.orders.FindByID(ctx, *attempt.OrderID)
		if err != nil {
			return nil, err
		}
	}

	return &models.CheckoutResult{
		ClientOrderID:   clientOrderID,
		OrderID:         order.ID,
		PaymentMethod:   method,
		ProductName:     order.ProductName,
		ProductPrice:    order.TotalPrice,
		ProductFlavor:   order.ProductFlavor,
		PaymentID:       payment.PaymentID,
		QRCode:          payment.QRCode,
		QRImageURL:      payment.QRImageURL,
		ExpiresAt:       payment.ExpiresAt,
		ClientSecret:    payment.ClientSecret,
		PaymentIntentID: payment.PaymentIntentID,
	}, nil
}

// loadAttempt returns the attempt for id, starting one when none exists. An
// attempt started by another session, or for a different method, line or
// address, is a conflict.
func (s *OrderService) loadAttempt(ctx context.Context, session models.Session, id uuid.UUID, method, digest string) (*models.CheckoutAttempt, error) {
	attempt, err := s.checkouts.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		attempt = &models.CheckoutAttempt{
			ID:            id,
			SessionID:     session.ID,
			PaymentMethod: method,
			RequestDigest: digest,
			Stage:         models.StageStarted,
		}
		if err := s.checkouts.Create(ctx, attempt); err != nil {
			return nil, fmt.Errorf("start checkout: %w", err)
		}
		return attempt, nil
	}
	if err != nil {
		return nil, err
	}

	if attempt.SessionID != session.ID || attempt.PaymentMethod != method || attempt.RequestDigest != digest {
		return nil, models.ErrCheckoutConflict
	}
	return attempt, nil
}

// fail records cause on the attempt, which stays at its last completed stage.
func (s *OrderService) fail(ctx context.Context, attempt *models.CheckoutAttempt, cause error) error {
	msg := cause.Error()
	attempt.LastError = &msg
	if err := s.checkouts.Save(context.WithoutCancel(ctx), attempt); err != nil {
		log.Printf("[checkout] record failure for %s: %v", attempt.ID, err)
	}
	return cause
}

func (s *OrderService) initiatePayment(ctx context.Context, clientOrderID uuid.UUID, method string, form models.CheckoutForm, line orderLine) (*models.PaymentInitiation, error) {
	total := line.total()
	description := fmt.Sprintf("%s - %s", line.name, line.flavor)

	if method == models.PaymentMethodCard {
		intent, err := s.card.CreateIntent(ctx, libs.CardIntentRequest{
			Amount:         models.BRL(total),
			Description:    description,
			CustomerEmail:  form.Email,
			CustomerName:   form.FullName,
			IdempotencyKey: "checkout_" + clientOrderID.String(),
			Metadata:       map[string]string{"client_order_id": clientOrderID.String()},
		})
		if err != nil {
			return nil, err
		}
		return &models.PaymentInitiation{
			PaymentID:       intent.ID,
			ClientSecret:    intent.ClientSecret,
			PaymentIntentID: intent.ID,
		}, nil
	}

	pix, err := s.pix.CreatePayment(ctx, libs.PixCreateRequest{
		Amount:          total.InexactFloat64(),
		Description:     description,
		CustomerName:    form.FullName,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		CustomerAddress: FullAddress(form),
		ExternalID:      "order_" + clientOrderID.String(),
	})
	if err != nil {
		return nil, err
	}
	return &models.PaymentInitiation{
		PaymentID:  pix.PaymentID,
		QRCode:     pix.QRCode,
		QRImageURL: pix.QRImageURL,
		ExpiresAt:  pix.ExpiresAt,
	}, nil
}

// GetOrder returns an order the session placed, with the payment data
// needed to resume its payment screen.
func (s *OrderService) GetOrder(ctx context.Context, session models.Session, id uuid.UUID) (*models.OrderDetail, error) {
	attempt, err := s.checkouts.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempt.SessionID != session.ID {
		return nil, models.ErrNotFound
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: *order, Stage: attempt.Stage}
	if len(attempt.PaymentPayload) > 0 {
		var payment models.PaymentInitiation
		if err := json.Unmarshal(attempt.PaymentPayload, &payment); err == nil {
			detail.Payment = &payment
		}
	}
	return detail, nil
}
