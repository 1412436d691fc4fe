package controllers

import (
	"net/http"

	"gummy-store/models"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// GetLikes godoc
// @Summary Review likes
// @Description Like counters of the product reviews and the reviews this session liked
// @Tags Reviews
// @Security SessionAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.ReviewLikesSummary}
// @Router /reviews/likes [get]
func (ctrl *ReviewController) GetLikes(c *gin.Context) {
	summary, err := ctrl.reviews.Summary(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, err, "Failed to load review likes")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Review likes retrieved successfully",
		Data:    summary,
	})
}

// ToggleLike godoc
// @Summary Like or unlike a review
// @Tags Reviews
// @Security SessionAuth
// @Produce json
// @Param review_id path string true "Review ID"
// @Success 200 {object} models.Response{data=models.ReviewToggleResult}
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{review_id}/like [post]
func (ctrl *ReviewController) ToggleLike(c *gin.Context) {
	result, err := ctrl.reviews.Toggle(c.Request.Context(), currentSession(c), c.Param("review_id"))
	if err != nil {
		respondError(c, err, "Failed to update like")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Like updated",
		Data:    result,
	})
}
