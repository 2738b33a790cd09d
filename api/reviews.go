package api

import (
	"net/http"

	"github.com/Domenick1991/sporthub/internal/service/review"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service review.ReviewUseCase
}

type createReviewRequest struct {
	VenueID  string  `json:"venueId"`
	UserID   *string `json:"userId"`
	UserName string  `json:"userName"`
	Rating   *int    `json:"rating"`
	Comment  string  `json:"comment"`
}

func NewReviewHandler(service review.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) Register(router *gin.RouterGroup) {
	router.POST("/reviews", h.create)
	router.GET("/venues/:venueId/reviews", h.listForVenue)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	created, err := h.service.CreateReview(c.Request.Context(), review.CreateReviewInput{
		VenueID:  req.VenueID,
		Owner:    ownerFrom(c, req.UserID),
		UserName: req.UserName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to create review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "review": created})
}

func (h *ReviewHandler) listForVenue(c *gin.Context) {
	reviews, err := h.service.ListReviewsForVenue(c.Request.Context(), c.Param("venueId"))
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}
