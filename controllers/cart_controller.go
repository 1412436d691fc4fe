package controllers

import (
	"net/http"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// GetCart godoc
// @Summary Get cart
// @Description List the session's cart items, newest first, with total and item count
// @Tags Cart
// @Security SessionAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved successfully",
		Data:    ctrl.cart.Get(c.Request.Context(), currentSession(c)),
	})
}

// GetCount godoc
// @Summary Cart badge count
// @Tags Cart
// @Security SessionAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/count [get]
func (ctrl *CartController) GetCount(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart count retrieved successfully",
		Data:    gin.H{"count": ctrl.cart.Count(c.Request.Context(), currentSession(c))},
	})
}

// AddItem godoc
// @Summary Add to cart
// @Description Add a product to the cart. Omitted fields default to the store's product.
// @Tags Cart
// @Security SessionAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Cart item"
// @Success 201 {object} models.Response{data=models.CartItem}
// @Failure 400 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	item, err := ctrl.cart.Add(c.Request.Context(), currentSession(c), req)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    item,
	})
}

// UpdateQuantity godoc
// @Summary Update cart item quantity
// @Description Quantities below 1 are rejected; use DELETE to remove an item
// @Tags Cart
// @Security SessionAuth
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	cart, err := ctrl.cart.UpdateQuantity(c.Request.Context(), currentSession(c), id, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart item updated",
		Data:    cart,
	})
}

// RemoveItem godoc
// @Summary Remove cart item
// @Tags Cart
// @Security SessionAuth
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} models.Response{data=models.Cart}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	cart, err := ctrl.cart.Remove(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, err, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart item removed",
		Data:    cart,
	})
}

// ClearCart godoc
// @Summary Clear cart
// @Tags Cart
// @Security SessionAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cart.Clear(c.Request.Context(), currentSession(c)); err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}
