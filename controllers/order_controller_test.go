package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gummy-store/libs"
	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutEnv struct {
	checkouts *memCheckouts
	orders    *memOrders
	pix       *scriptedPix
	orderSvc  *services.OrderService
	payments  *services.PaymentService
}

func newCheckoutEnv() *checkoutEnv {
	env := &checkoutEnv{
		checkouts: newMemCheckouts(),
		orders:    newMemOrders(),
		pix: &scriptedPix{payment: libs.PixPayment{
			PaymentID:  "pix_ctrl",
			QRCode:     "00020126580014br.gov.bcb.pix",
			QRImageURL: "https://pix.example/qr.png",
		}},
	}
	card := &stubCard{intent: &libs.CardIntent{ID: "pi_ctrl", ClientSecret: "pi_ctrl_secret"}}
	env.orderSvc = services.NewOrderService(env.checkouts, &memAddresses{}, env.orders, env.pix, card, nil)
	env.payments = services.NewPaymentService(env.orders, env.checkouts, env.pix, card, silentNotifier{}, 0)
	return env
}

func (env *checkoutEnv) orderRouter(sessionID string) *gin.Engine {
	ctrl := NewOrderController(env.orderSvc)
	r := gin.New()
	r.Use(withSession(sessionID))
	r.POST("/orders", ctrl.PlaceOrder)
	r.GET("/orders/:id", ctrl.GetOrder)
	return r
}

func orderBody(clientOrderID uuid.UUID, method string, quantity int) string {
	return fmt.Sprintf(`{
		"client_order_id": %q,
		"payment_method": %q,
		"form": {
			"fullName": "Maria Silva",
			"phone": "11987654321",
			"email": "maria@example.com",
			"cep": "01310100",
			"state": "SP",
			"city": "São Paulo",
			"street": "Av. Paulista",
			"number": "1000",
			"complement": "Apto 12"
		},
		"product": {"name": %q, "flavor": "Morango", "quantity": %d}
	}`, clientOrderID, method, models.GummyHair.Name, quantity)
}

type checkoutEnvelope struct {
	Success bool                  `json:"success"`
	Data    models.CheckoutResult `json:"data"`
}

func TestPlaceOrderHandler(t *testing.T) {
	env := newCheckoutEnv()
	router := env.orderRouter("sess_ctrl")
	clientOrderID := uuid.New()

	w := postJSON(t, router, "/orders", orderBody(clientOrderID, "pix", 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created checkoutEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, models.PaymentMethodPix, created.Data.PaymentMethod)
	assert.Equal(t, clientOrderID, created.Data.ClientOrderID)
	assert.Equal(t, "pix_ctrl", created.Data.PaymentID)
	assert.NotEmpty(t, created.Data.QRCode)
	assert.True(t, decimal.RequireFromString("39.74").Equal(created.Data.ProductPrice))

	retry := postJSON(t, router, "/orders", orderBody(clientOrderID, "pix", 2))
	require.Equal(t, http.StatusCreated, retry.Code)
	var resumed checkoutEnvelope
	require.NoError(t, json.Unmarshal(retry.Body.Bytes(), &resumed))
	assert.Equal(t, created.Data.OrderID, resumed.Data.OrderID)

	changed := postJSON(t, router, "/orders", orderBody(clientOrderID, "pix", 5))
	assert.Equal(t, http.StatusConflict, changed.Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/orders/"+created.Data.OrderID.String(), nil))
	require.Equal(t, http.StatusOK, get.Code)

	var detail struct {
		Data models.OrderDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &detail))
	assert.Equal(t, models.OrderStatusPending, detail.Data.Order.Status)
	assert.Equal(t, 2, detail.Data.Order.Quantity)
	require.NotNil(t, detail.Data.Payment)
	assert.Equal(t, "pix_ctrl", detail.Data.Payment.PaymentID)

	foreign := httptest.NewRecorder()
	env.orderRouter("sess_other").ServeHTTP(foreign, httptest.NewRequest(http.MethodGet, "/orders/"+created.Data.OrderID.String(), nil))
	assert.Equal(t, http.StatusNotFound, foreign.Code)
}

func TestPlaceOrderHandlerRejectsInvalidForm(t *testing.T) {
	env := newCheckoutEnv()

	w := postJSON(t, env.orderRouter("sess_ctrl"), "/orders", `{"payment_method":"pix","form":{"fullName":"Maria"}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "email")
	assert.Empty(t, env.orders.orders)
}
