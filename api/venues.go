package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/sporthub/internal/service/availability"
	"github.com/Domenick1991/sporthub/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	catalog      catalog.CatalogUseCase
	availability availability.AvailabilityUseCase
}

type validatePromoRequest struct {
	PromoCode string `json:"promoCode"`
}

func NewVenueHandler(catalog catalog.CatalogUseCase, availability availability.AvailabilityUseCase) *VenueHandler {
	return &VenueHandler{catalog: catalog, availability: availability}
}

func (h *VenueHandler) Register(router *gin.RouterGroup) {
	router.GET("/sports", h.listSports)
	router.GET("/venues", h.listVenues)
	router.GET("/venues/:venueId", h.getVenue)
	router.GET("/venues/:venueId/availability", h.bookedSlots)
	router.GET("/venues/:venueId/slots", h.slots)
	router.GET("/venues/:venueId/quote", h.quote)
	router.POST("/promo/validate", h.validatePromo)
}

func (h *VenueHandler) listSports(c *gin.Context) {
	sports, err := h.catalog.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, err, "Not found", "Failed to fetch sports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sports": sports})
}

func (h *VenueHandler) listVenues(c *gin.Context) {
	venues, err := h.catalog.ListVenues(c.Request.Context(), c.Query("sport"))
	if err != nil {
		respondError(c, err, "Not found", "Failed to fetch venues")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "venues": venues})
}

func (h *VenueHandler) getVenue(c *gin.Context) {
	venue, err := h.catalog.GetVenue(c.Request.Context(), c.Param("venueId"))
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to fetch venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "venue": venue})
}

func (h *VenueHandler) bookedSlots(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		badRequest(c, "Date parameter is required", nil)
		return
	}
	slots, err := h.availability.BookedSlots(c.Request.Context(), c.Param("venueId"), date)
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to fetch availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookedSlots": slots})
}

func (h *VenueHandler) slots(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		badRequest(c, "Date parameter is required", nil)
		return
	}
	slots, err := h.availability.Availability(c.Request.Context(), c.Param("venueId"), date)
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to fetch availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}

func (h *VenueHandler) quote(c *gin.Context) {
	slot := strings.TrimSpace(c.Query("timeSlot"))
	if slot == "" {
		badRequest(c, "timeSlot parameter is required", nil)
		return
	}
	q, err := h.catalog.Quote(c.Request.Context(), c.Param("venueId"), slot, c.Query("promoCode"))
	if err != nil {
		respondError(c, err, "Venue not found", "Failed to price booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quote": q})
}

func (h *VenueHandler) validatePromo(c *gin.Context) {
	var req validatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	code, ok := h.catalog.ValidatePromo(c.Request.Context(), req.PromoCode)
	if !ok {
		badRequest(c, "Invalid promo code", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "promoCode": code, "discountRate": h.catalog.DiscountRate()})
}
