package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gummy-store/libs"
	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(context.Context, []models.ChatTurn, string) (string, error) {
	return s.reply, s.err
}

type stubCard struct {
	got          libs.CardIntentRequest
	intent       *libs.CardIntent
	err          error
	unconfigured bool
}

func (s *stubCard) Configured() bool {
	return !s.unconfigured
}

func (s *stubCard) CreateIntent(_ context.Context, in libs.CardIntentRequest) (*libs.CardIntent, error) {
	s.got = in
	return s.intent, s.err
}

func (s *stubCard) IntentStatus(context.Context, string) (string, error) {
	return "", s.err
}

func newFunctionsRouter(completer services.Completer, card IntentCreator) *gin.Engine {
	ctrl := NewFunctionsController(services.NewChatService(nil, nil, completer), card)
	r := gin.New()
	r.POST("/functions/chat-ai", ctrl.ChatAI)
	r.POST("/functions/create-payment-intent", ctrl.CreatePaymentIntent)
	return r
}

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatAI(t *testing.T) {
	tests := []struct {
		name       string
		completer  stubCompleter
		body       string
		wantStatus int
		wantReply  string
	}{
		{
			name:       "reply",
			completer:  stubCompleter{reply: "Sim, sem glúten."},
			body:       `{"message":"Tem glúten?","conversationHistory":[{"role":"user","content":"Oi"}]}`,
			wantStatus: http.StatusOK,
			wantReply:  "Sim, sem glúten.",
		},
		{
			name:       "upstream failure degrades",
			completer:  stubCompleter{err: assert.AnError},
			body:       `{"message":"Tem glúten?"}`,
			wantStatus: http.StatusOK,
			wantReply:  models.ChatUnavailable,
		},
		{
			name:       "malformed body",
			completer:  stubCompleter{reply: "unused"},
			body:       `{"message":`,
			wantStatus: http.StatusInternalServerError,
			wantReply:  models.ChatApology,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, newFunctionsRouter(tt.completer, &stubCard{}), "/functions/chat-ai", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp models.ChatAIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReply, resp.Reply)
		})
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	tests := []struct {
		name       string
		card       *stubCard
		body       string
		wantStatus int
		wantError  string
		wantSecret string
	}{
		{
			name:       "created",
			card:       &stubCard{intent: &libs.CardIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}},
			body:       `{"amount":48.13,"currency":"brl","customer_email":"maria@example.com","customer_name":"Maria"}`,
			wantStatus: http.StatusOK,
			wantSecret: "pi_1_secret",
		},
		{
			name:       "missing email",
			card:       &stubCard{},
			body:       `{"amount":48.13,"currency":"brl"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields: amount, currency, customer_email",
		},
		{
			name:       "zero amount",
			card:       &stubCard{},
			body:       `{"amount":0,"currency":"brl","customer_email":"maria@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields: amount, currency, customer_email",
		},
		{
			name:       "stripe not configured",
			card:       &stubCard{unconfigured: true},
			body:       `{"amount":48.13,"currency":"brl","customer_email":"maria@example.com"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Stripe not configured. Please set STRIPE_SECRET_KEY.",
		},
		{
			name:       "not configured wins over a bad body",
			card:       &stubCard{unconfigured: true},
			body:       `{"currency":"brl"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Stripe not configured. Please set STRIPE_SECRET_KEY.",
		},
		{
			name:       "gateway reports unavailable",
			card:       &stubCard{err: models.ErrProviderUnavailable},
			body:       `{"amount":48.13,"currency":"brl","customer_email":"maria@example.com"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Stripe not configured. Please set STRIPE_SECRET_KEY.",
		},
		{
			name:       "provider message surfaced",
			card:       &stubCard{err: &models.ProviderError{Provider: "stripe", Message: "Your card was declined."}},
			body:       `{"amount":48.13,"currency":"brl","customer_email":"maria@example.com"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Your card was declined.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, newFunctionsRouter(stubCompleter{}, tt.card), "/functions/create-payment-intent", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp models.PaymentIntentResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantSecret, resp.ClientSecret)
		})
	}
}

func TestCreatePaymentIntentAmountInCents(t *testing.T) {
	card := &stubCard{intent: &libs.CardIntent{ID: "pi_1", ClientSecret: "s"}}
	w := postJSON(t, newFunctionsRouter(stubCompleter{}, card), "/functions/create-payment-intent",
		`{"amount":48.13,"currency":"BRL","customer_email":"maria@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(4813), card.got.Amount.Cents())
	assert.Equal(t, "brl", card.got.Amount.Code())
}
