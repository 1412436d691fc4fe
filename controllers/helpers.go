package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"gummy-store/middleware"
	"gummy-store/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func currentSession(c *gin.Context) models.Session {
	return models.Session{ID: middleware.SessionID(c)}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid %s", name),
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto the error envelope.
func respondError(c *gin.Context, err error, fallback string) {
	var validation *models.ValidationError
	var provider *models.ProviderError
	var cardStatus *models.CardStatusError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validation.Fields,
		})
	case errors.As(err, &cardStatus):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{
			Success: false,
			Message: "Payment not confirmed",
			Error:   cardStatus.IntentStatus,
		})
	case errors.As(err, &provider):
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Message: provider.Message,
			Error:   provider.Provider,
		})
	case errors.Is(err, models.ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Not found"})
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPayment),
		errors.Is(err, models.ErrInvalidSession):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, models.ErrCheckoutInProgress),
		errors.Is(err, models.ErrCheckoutConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: fallback,
		})
	}
}

func getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}
	if page > 1 {
		links.Prev = makeURL(page - 1)
	}
	if page < totalPages {
		links.Next = makeURL(page + 1)
	}
	return links
}

func buildPagedResponse(c *gin.Context, message string, data interface{}, meta models.PaginationMeta) models.HATEOASResponse {
	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
		Links:   generateLinks(c, meta.Page, meta.Limit, meta.TotalPages),
	}
}
