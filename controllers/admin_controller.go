package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

// Login godoc
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.SessionResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/login [post]
func (ctrl *AdminController) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	session, err := ctrl.admin.Login(req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data:    session,
	})
}

// ListOrders godoc
// @Summary List orders
// @Description Paginated orders, newest first
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "pending or paid"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/orders [get]
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	page, limit := getPaginationParams(c, 20)

	status := c.Query("status")
	if strings.EqualFold(status, "all") {
		status = ""
	}

	orders, meta, err := ctrl.admin.ListOrders(c.Request.Context(), status, page, limit)
	if err != nil {
		respondError(c, err, "Failed to get orders")
		return
	}

	c.JSON(http.StatusOK, buildPagedResponse(c, "Orders retrieved successfully", orders, meta))
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Status is required", Error: err.Error()})
		return
	}

	if err := ctrl.admin.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"data": gin.H{
			"id":     id,
			"status": req.Status,
		},
	})
}

// ExportOrders godoc
// @Summary Export orders
// @Description Spreadsheet of orders with their delivery addresses
// @Tags Admin
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "pending or paid"
// @Success 200 {file} file
// @Router /admin/orders/export [get]
func (ctrl *AdminController) ExportOrders(c *gin.Context) {
	rows, err := ctrl.admin.ExportOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to export orders")
		return
	}

	file, err := buildOrdersSheet(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to create Excel sheet"})
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to write Excel file"})
		return
	}
}

var orderSheetHeaders = []string{
	"ID", "Status", "Pagamento", "ID Pagamento", "Produto", "Sabor", "Quantidade",
	"Preço", "Total", "Cliente", "E-mail", "Telefone", "Endereço", "Criado em",
}

func buildOrdersSheet(rows []models.OrderExportRow) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Pedidos")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range orderSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID.String())
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(o.PaymentID)
		row.AddCell().SetValue(o.ProductName)
		row.AddCell().SetValue(o.ProductFlavor)
		row.AddCell().SetValue(o.Quantity)
		row.AddCell().SetValue(o.ProductPrice.InexactFloat64())
		row.AddCell().SetValue(o.TotalPrice.InexactFloat64())
		row.AddCell().SetValue(o.FullName)
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
