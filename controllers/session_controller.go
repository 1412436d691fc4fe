package controllers

import (
	"net/http"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// CreateSession godoc
// @Summary Start a session
// @Description Issue a signed session token. Older clients may pass their stored id as legacy_id to keep their cart and likes.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body models.CreateSessionRequest false "Legacy session id"
// @Success 201 {object} models.Response{data=models.SessionResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /session [post]
func (ctrl *SessionController) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
			return
		}
	}

	session, err := ctrl.sessions.Create(req.LegacyID)
	if err != nil {
		respondError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Session created",
		Data:    session,
	})
}
