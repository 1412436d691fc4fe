package controllers

import (
	"net/http"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// OpenChat godoc
// @Summary Open chat
// @Description Resume the session's latest conversation or start one with the welcome message
// @Tags Chat
// @Security SessionAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.ChatThread}
// @Router /chat/open [post]
func (ctrl *ChatController) OpenChat(c *gin.Context) {
	thread, err := ctrl.chat.Open(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, err, "Failed to open chat")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Chat opened",
		Data:    thread,
	})
}

// SendMessage godoc
// @Summary Send chat message
// @Description Store the message, ask the assistant and store its reply. When the assistant fails the reply is an apology with persisted=false.
// @Tags Chat
// @Security SessionAuth
// @Accept json
// @Produce json
// @Param request body models.ChatMessageRequest true "Message"
// @Success 200 {object} models.Response{data=models.ChatExchange}
// @Failure 400 {object} models.ErrorResponse
// @Router /chat/messages [post]
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	exchange, err := ctrl.chat.Send(c.Request.Context(), currentSession(c), req.Message)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Message sent",
		Data:    exchange,
	})
}
