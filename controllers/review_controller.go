package controllers

import (
	"net/http"

	"abeg-fix/middleware"
	"abeg-fix/models"
	"abeg-fix/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// CreateReview godoc
// @Summary Review an artisan
// @Description One review per customer and artisan. The artisan's rating is recomputed afterwards.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.ReviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := ctrl.reviews.Create(c.Request.Context(), middleware.CurrentAccount(c), req)
	warning, ok := degraded(c, err)
	if err != nil && !ok {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ReviewResponse{Review: *review, Warning: warning})
}

// DeleteReview godoc
// @Summary Delete your review
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	err := ctrl.reviews.Delete(c.Request.Context(), middleware.CurrentAccount(c).ID, c.Param("id"))
	warning, ok := degraded(c, err)
	if err != nil && !ok {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Review removed", Warning: warning})
}

// GetArtisanReviews godoc
// @Summary Reviews of an artisan, newest first
// @Tags Reviews
// @Produce json
// @Param artisanId path string true "Artisan ID"
// @Success 200 {array} models.ReviewWithAuthor
// @Router /api/reviews/artisan/{artisanId} [get]
func (ctrl *ReviewController) GetArtisanReviews(c *gin.Context) {
	reviews, err := ctrl.reviews.ListForArtisan(c.Request.Context(), c.Param("artisanId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
