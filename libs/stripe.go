package libs

import (
	"context"
	"errors"
	"fmt"

	"gummy-store/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const stripeProvider = "stripe"

type CardIntentRequest struct {
	Amount         models.Money
	Description    string
	CustomerEmail  string
	CustomerName   string
	IdempotencyKey string
	Metadata       map[string]string
}

type CardIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Configured() bool {
	return g != nil && g.api != nil
}

func (g *StripeGateway) CreateIntent(ctx context.Context, in CardIntentRequest) (*CardIntent, error) {
	if !g.Configured() {
		return nil, models.ErrProviderUnavailable
	}

	description := in.Description
	if description == "" {
		description = "Compra na Shopee"
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(in.Amount.Cents()),
		Currency:     stripe.String(in.Amount.Code()),
		Description:  stripe.String(description),
		ReceiptEmail: stripe.String(in.CustomerEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("customer_name", in.CustomerName)
	params.AddMetadata("customer_email", in.CustomerEmail)
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return &CardIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g *StripeGateway) IntentStatus(ctx context.Context, intentID string) (string, error) {
	if !g.Configured() {
		return "", models.ErrProviderUnavailable
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return "", wrapStripeError(err)
	}
	return string(pi.Status), nil
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &models.ProviderError{
			Provider:   stripeProvider,
			StatusCode: stripeErr.HTTPStatusCode,
			Message:    stripeErr.Msg,
			Err:        err,
		}
	}
	return &models.ProviderError{Provider: stripeProvider, Message: fmt.Sprintf("failed to reach stripe: %v", err), Err: err}
}
