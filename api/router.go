package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/sporthub/internal/service/availability"
	"github.com/Domenick1991/sporthub/internal/service/booking"
	"github.com/Domenick1991/sporthub/internal/service/catalog"
	"github.com/Domenick1991/sporthub/internal/service/review"
	"github.com/Domenick1991/sporthub/internal/service/stats"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Bookings     booking.BookingUseCase
	Reviews      review.ReviewUseCase
	Availability availability.AvailabilityUseCase
	Stats        stats.StatsUseCase
	Catalog      catalog.CatalogUseCase
}

type RouterConfig struct {
	BasePath       string
	SwaggerDir     string
	JWTSecret      string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig, svc Services, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(log), Logger(log))
	if cfg.RequestTimeout > 0 {
		router.Use(Timeout(cfg.RequestTimeout))
	}

	group := router.Group(cfg.BasePath, Identity(cfg.JWTSecret))
	NewBookingHandler(svc.Bookings).Register(group)
	NewReviewHandler(svc.Reviews).Register(group)
	NewVenueHandler(svc.Catalog, svc.Availability).Register(group)
	NewStatsHandler(svc.Stats).Register(group)

	if cfg.BasePath != "" && cfg.BasePath != "/" {
		router.GET("/health", health)
	}

	if cfg.SwaggerDir != "" {
		router.StaticFile("/swagger/openapi.json", filepath.Join(cfg.SwaggerDir, "openapi.json"))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/openapi.json"))))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	})
	return router
}
