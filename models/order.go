package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

const (
	PaymentMethodPix  = "pix"
	PaymentMethodCard = "card"
)

type Address struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FullName   string    `json:"full_name" db:"full_name"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	Address    string    `json:"address" db:"address"`
	CEP        string    `json:"cep" db:"cep"`
	City       string    `json:"city" db:"city"`
	State      string    `json:"state" db:"state"`
	Street     string    `json:"street" db:"street"`
	Number     string    `json:"number" db:"number"`
	Complement string    `json:"complement" db:"complement"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Order struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	AddressID        uuid.UUID       `json:"address_id" db:"address_id"`
	ProductName      string          `json:"product_name" db:"product_name"`
	ProductPrice     decimal.Decimal `json:"product_price" db:"product_price"`
	ProductFlavor    string          `json:"product_flavor" db:"product_flavor"`
	Quantity         int             `json:"quantity" db:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	Status           string          `json:"status" db:"status"`
	PaymentMethod    string          `json:"payment_method" db:"payment_method"`
	PaymentID        string          `json:"payment_id" db:"payment_id"`
	PaymentExpiresAt *time.Time      `json:"payment_expires_at,omitempty" db:"payment_expires_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderExportRow is an order joined with its delivery address.
type OrderExportRow struct {
	Order
	FullName string `json:"full_name" db:"full_name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Address  string `json:"address" db:"address"`
}

// Checkout stages, in the order they complete.
const (
	StageStarted          = "started"
	StageAddressCreated   = "address_created"
	StagePaymentInitiated = "payment_initiated"
	StageOrderRecorded    = "order_recorded"
	StagePaymentConfirmed = "payment_confirmed"
)

var stageRank = map[string]int{
	StageStarted:          0,
	StageAddressCreated:   1,
	StagePaymentInitiated: 2,
	StageOrderRecorded:    3,
	StagePaymentConfirmed: 4,
}

// CheckoutAttempt records how far one client order id got through checkout.
type CheckoutAttempt struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	SessionID      string          `json:"session_id" db:"session_id"`
	PaymentMethod  string          `json:"payment_method" db:"payment_method"`
	RequestDigest  string          `json:"-" db:"request_digest"`
	Stage          string          `json:"stage" db:"stage"`
	AddressID      *uuid.UUID      `json:"address_id,omitempty" db:"address_id"`
	PaymentID      *string         `json:"payment_id,omitempty" db:"payment_id"`
	PaymentPayload json.RawMessage `json:"payment_payload,omitempty" db:"payment_payload"`
	OrderID        *uuid.UUID      `json:"order_id,omitempty" db:"order_id"`
	LastError      *string         `json:"last_error,omitempty" db:"last_error"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Reached reports whether the attempt completed stage already.
func (a *CheckoutAttempt) Reached(stage string) bool {
	return stageRank[a.Stage] >= stageRank[stage]
}

// PaymentInitiation is what a provider handed back when the payment was created.
type PaymentInitiation struct {
	PaymentID       string     `json:"payment_id"`
	QRCode          string     `json:"qr_code,omitempty"`
	QRImageURL      string     `json:"qr_image_url,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ClientSecret    string     `json:"client_secret,omitempty"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
}

// CheckoutResult carries everything the payment screen needs.
type CheckoutResult struct {
	ClientOrderID   uuid.UUID       `json:"clientOrderId"`
	OrderID         uuid.UUID       `json:"orderId"`
	PaymentMethod   string          `json:"paymentMethod"`
	ProductName     string          `json:"productName"`
	ProductPrice    decimal.Decimal `json:"productPrice"`
	ProductFlavor   string          `json:"productFlavor"`
	PaymentID       string          `json:"paymentId,omitempty"`
	QRCode          string          `json:"qrCode,omitempty"`
	QRImageURL      string          `json:"qrImageUrl,omitempty"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	ClientSecret    string          `json:"clientSecret,omitempty"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty"`
}

// OrderDetail is an order with the payment data needed to resume its
// payment screen.
type OrderDetail struct {
	Order   Order              `json:"order"`
	Payment *PaymentInitiation `json:"payment,omitempty"`
	Stage   string             `json:"stage,omitempty"`
}
