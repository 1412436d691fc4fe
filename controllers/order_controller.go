package controllers

import (
	"net/http"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// ValidateCheckout godoc
// @Summary Validate checkout form
// @Description Check the contact and delivery fields and return inline errors with the masked values
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CheckoutForm true "Checkout form"
// @Success 200 {object} models.Response{data=models.ValidateFormResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/validate [post]
func (ctrl *OrderController) ValidateCheckout(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	fields := services.ValidateCheckoutForm(form)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Form checked",
		Data: models.ValidateFormResponse{
			Valid:  len(fields) == 0,
			Errors: fields,
			Masked: services.MaskCheckoutForm(form),
		},
	})
}

// PlaceOrder godoc
// @Summary Place order
// @Description Create the address, the PIX charge or card payment intent, and the pending order. Retrying with the same client_order_id resumes where the previous attempt stopped.
// @Tags Checkout
// @Security SessionAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Order"
// @Success 201 {object} models.Response{data=models.CheckoutResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	result, err := ctrl.orders.PlaceOrder(c.Request.Context(), currentSession(c), req)
	if err != nil {
		respondError(c, err, "Erro ao processar pedido. Tente novamente.")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order created successfully",
		Data:    result,
	})
}

// GetOrder godoc
// @Summary Get order
// @Description Get an order placed by this session with the data needed to resume its payment
// @Tags Checkout
// @Security SessionAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response{data=models.OrderDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.orders.GetOrder(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, err, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved successfully",
		Data:    detail,
	})
}
