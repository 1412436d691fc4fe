package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSessionRequest struct {
	LegacyID string `json:"legacy_id" form:"legacy_id"`
}

type AddCartItemRequest struct {
	ProductName   string           `json:"product_name"`
	ProductPrice  *decimal.Decimal `json:"product_price"`
	ProductFlavor string           `json:"product_flavor"`
	Quantity      int              `json:"quantity" binding:"omitempty,min=1"`
	ProductImage  *string          `json:"product_image"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutForm holds the contact and delivery fields of the checkout screen.
type CheckoutForm struct {
	FullName   string `json:"fullName" validate:"notblank"`
	Phone      string `json:"phone" validate:"notblank,mindigits=10"`
	Email      string `json:"email" validate:"notblank,emailshape"`
	CEP        string `json:"cep" validate:"notblank,digits=8"`
	State      string `json:"state" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	Street     string `json:"street" validate:"notblank"`
	Number     string `json:"number" validate:"notblank"`
	Complement string `json:"complement"`
}

// OrderProduct names the catalog line to order. Price is still sent by older
// clients and is ignored.
type OrderProduct struct {
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Flavor   string           `json:"flavor"`
	Quantity int              `json:"quantity"`
}

type PlaceOrderRequest struct {
	ClientOrderID uuid.UUID     `json:"client_order_id"`
	PaymentMethod string        `json:"payment_method" binding:"required"`
	Form          CheckoutForm  `json:"form"`
	Product       *OrderProduct `json:"product"`
}

type ValidateFormResponse struct {
	Valid  bool         `json:"valid"`
	Errors FieldErrors  `json:"errors"`
	Masked CheckoutForm `json:"masked"`
}

type PixCheckResult struct {
	PaymentID           string `json:"payment_id"`
	Status              string `json:"status"`
	Completed           bool   `json:"completed"`
	VerificationPending bool   `json:"verification_pending"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatAIRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

type ChatAIResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

type PaymentIntentRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Description   string  `json:"description"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	Error           string `json:"error,omitempty"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,oneof=pending paid"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

type HATEOASResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Meta    PaginationMeta  `json:"meta"`
	Links   PaginationLinks `json:"links"`
}
