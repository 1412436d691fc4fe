package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsWriteWait = 10 * time.Second

type PaymentController struct {
	payments *services.PaymentService
	watcher  *services.PixWatcher
}

func NewPaymentController(payments *services.PaymentService, watcher *services.PixWatcher) *PaymentController {
	return &PaymentController{payments: payments, watcher: watcher}
}

// WatchPix godoc
// @Summary Watch PIX payment
// @Description Websocket stream of {status, remaining} events: a countdown every second and a provider poll every few seconds, ending with completed or expired
// @Tags Payments
// @Security SessionAuth
// @Param payment_id path string true "Provider payment ID"
// @Param token query string false "Session token for clients that cannot set headers"
// @Success 101 {object} services.WatchEvent
// @Failure 404 {object} models.ErrorResponse
// @Router /payments/{payment_id}/ws [get]
func (ctrl *PaymentController) WatchPix(c *gin.Context) {
	paymentID := c.Param("payment_id")

	expiresAt, err := ctrl.payments.PixExpiry(c.Request.Context(), currentSession(c), paymentID)
	if err != nil {
		respondError(c, err, "Failed to load payment")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade %s: %v", paymentID, err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client only closes; any read error ends the watch.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = ctrl.watcher.Watch(ctx, paymentID, expiresAt, func(ev services.WatchEvent) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(ev)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[ws] watch %s: %v", paymentID, err)
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// CheckPix godoc
// @Summary Check PIX payment
// @Description Ask the provider for the payment status. A completed payment marks its order paid; anything else reports verification_pending.
// @Tags Payments
// @Security SessionAuth
// @Produce json
// @Param payment_id path string true "Provider payment ID"
// @Success 200 {object} models.Response{data=models.PixCheckResult}
// @Failure 404 {object} models.ErrorResponse
// @Router /payments/{payment_id}/check [post]
func (ctrl *PaymentController) CheckPix(c *gin.Context) {
	paymentID := c.Param("payment_id")
	if _, err := ctrl.payments.PixPaymentFor(c.Request.Context(), currentSession(c), paymentID); err != nil {
		respondError(c, err, "Failed to load payment")
		return
	}

	result := ctrl.payments.CheckPix(c.Request.Context(), paymentID)

	message := "Pagamento confirmado"
	if !result.Completed {
		message = "Pagamento ainda não identificado"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// ConfirmCard godoc
// @Summary Confirm card payment
// @Description Retrieve the order's payment intent and mark the order paid only when it succeeded
// @Tags Payments
// @Security SessionAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 402 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /orders/{id}/card/confirm [post]
func (ctrl *PaymentController) ConfirmCard(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.payments.ConfirmCard(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, err, "Erro ao processar pagamento. Tente novamente.")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Pagamento confirmado",
		Data:    order,
	})
}
