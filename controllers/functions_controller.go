package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gummy-store/libs"
	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IntentCreator is a card gateway that can tell whether it has credentials.
type IntentCreator interface {
	services.CardGateway
	Configured() bool
}

// FunctionsController serves the two stateless endpoints the storefront
// calls directly: chat completion and card payment-intent creation.
type FunctionsController struct {
	chat *services.ChatService
	card IntentCreator
}

func NewFunctionsController(chat *services.ChatService, card IntentCreator) *FunctionsController {
	return &FunctionsController{chat: chat, card: card}
}

const stripeUnconfigured = "Stripe not configured. Please set STRIPE_SECRET_KEY."

// ChatAI godoc
// @Summary Chat completion
// @Description Answer one message with the store assistant. Upstream failures degrade to a canned reply with status 200.
// @Tags Functions
// @Accept json
// @Produce json
// @Param request body models.ChatAIRequest true "Message and prior turns"
// @Success 200 {object} models.ChatAIResponse
// @Failure 500 {object} models.ChatAIResponse
// @Router /functions/chat-ai [post]
func (ctrl *FunctionsController) ChatAI(c *gin.Context) {
	var req models.ChatAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, models.ChatAIResponse{
			Reply: models.ChatApology,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ctrl.chat.Reply(c.Request.Context(), req))
}

// CreatePaymentIntent godoc
// @Summary Create card payment intent
// @Tags Functions
// @Accept json
// @Produce json
// @Param request body models.PaymentIntentRequest true "Payment"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 400 {object} models.PaymentIntentResponse
// @Failure 500 {object} models.PaymentIntentResponse
// @Router /functions/create-payment-intent [post]
func (ctrl *FunctionsController) CreatePaymentIntent(c *gin.Context) {
	if !ctrl.card.Configured() {
		c.JSON(http.StatusInternalServerError, models.PaymentIntentResponse{Error: stripeUnconfigured})
		return
	}

	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.PaymentIntentResponse{Error: "Invalid request body"})
		return
	}

	if req.Amount <= 0 || strings.TrimSpace(req.Currency) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		c.JSON(http.StatusBadRequest, models.PaymentIntentResponse{
			Error: "Missing required fields: amount, currency, customer_email",
		})
		return
	}

	unit, err := models.ParseCurrency(req.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.PaymentIntentResponse{Error: err.Error()})
		return
	}

	intent, err := ctrl.card.CreateIntent(c.Request.Context(), libs.CardIntentRequest{
		Amount:        models.Money{Amount: decimal.NewFromFloat(req.Amount), Currency: unit},
		Description:   req.Description,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
	})
	if err != nil {
		log.Printf("[functions] payment intent: %v", err)

		message := "Failed to create payment intent"
		var provider *models.ProviderError
		switch {
		case errors.Is(err, models.ErrProviderUnavailable):
			message = stripeUnconfigured
		case errors.As(err, &provider) && provider.Message != "":
			message = provider.Message
		}
		c.JSON(http.StatusInternalServerError, models.PaymentIntentResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, models.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}
