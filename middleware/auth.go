package middleware

import (
	"net/http"
	"strings"

	"gummy-store/models"
	"gummy-store/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextSessionID = "session_id"
	ContextRole      = "role"
	ContextAdmin     = "admin_email"
)

// bearerToken reads "Authorization: Bearer <token>" and falls back to the
// X-Session-Token header, which websocket clients can set more easily.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return "", false
		}
		return tokenParts[1], true
	}

	if token := c.GetHeader("X-Session-Token"); token != "" {
		return token, true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Session token required",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired session",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		if claims.Role != models.RoleSession {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func AdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		if claims.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Access denied. Admin role required",
			})
			c.Abort()
			return
		}

		c.Set(ContextAdmin, claims.SessionID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// SessionID returns the session bound by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
