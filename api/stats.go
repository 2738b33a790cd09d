package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/sporthub/internal/service/stats"
	"github.com/gin-gonic/gin"
)

const serviceName = "SportHub Booking API"

type StatsHandler struct {
	service stats.StatsUseCase
}

func NewStatsHandler(service stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.stats)
	router.GET("/health", health)
}

func (h *StatsHandler) stats(c *gin.Context) {
	s, err := h.service.ComputeStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Not found", "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": s})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"service":   serviceName,
	})
}
