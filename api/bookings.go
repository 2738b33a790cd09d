package api

import (
	"net/http"

	"github.com/Domenick1991/sporthub/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Sport     string           `json:"sport"`
	VenueID   string           `json:"venueId"`
	VenueName string           `json:"venueName"`
	Date      string           `json:"date"`
	TimeSlot  string           `json:"timeSlot"`
	Price     *decimal.Decimal `json:"price"`
	PromoCode *string          `json:"promoCode"`
	UserID    *string          `json:"userId"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/:id", h.get)
	router.DELETE("/bookings/:id", h.cancel)
	router.GET("/users/:userId/bookings", h.listForUser)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	input := booking.CreateBookingInput{
		Sport:     req.Sport,
		VenueID:   req.VenueID,
		VenueName: req.VenueName,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Price:     req.Price,
		Owner:     ownerFrom(c, req.UserID),
	}
	if req.PromoCode != nil {
		input.PromoCode = *req.PromoCode
	}

	created, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil && created != nil {
		// Stored and holding its slot, but missing from the user's list.
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Booking created but not added to user history",
			"details": err.Error(),
			"booking": created,
		})
		return
	}
	if err != nil {
		respondError(c, err, "Booking not found", "Failed to create booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": created})
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Booking not found", "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": found})
}

func (h *BookingHandler) listForUser(c *gin.Context) {
	bookings, err := h.service.ListBookingsForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "User not found", "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	if _, err := h.service.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Booking not found", "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully"})
}
