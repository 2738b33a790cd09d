package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/sporthub/api"
	"github.com/Domenick1991/sporthub/config"
	"github.com/Domenick1991/sporthub/internal/bootstrap"
	"github.com/Domenick1991/sporthub/internal/catalog"
	"github.com/Domenick1991/sporthub/internal/kafka"
	"github.com/Domenick1991/sporthub/internal/logger"
	"github.com/Domenick1991/sporthub/internal/repository"
	"github.com/Domenick1991/sporthub/internal/service/availability"
	"github.com/Domenick1991/sporthub/internal/service/booking"
	catalogsvc "github.com/Domenick1991/sporthub/internal/service/catalog"
	"github.com/Domenick1991/sporthub/internal/service/review"
	"github.com/Domenick1991/sporthub/internal/service/stats"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.Setup(cfg.Log)
	bootstrap.ConfigureJSON()
	if cfg.HTTP.Mode != "" {
		gin.SetMode(cfg.HTTP.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()
	log.WithField("driver", cfg.Storage.Driver).Info("storage ready")

	data, err := catalog.Default()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	pricing, err := catalogsvc.NewPricing(cfg.Pricing)
	if err != nil {
		log.Fatalf("pricing config: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(store)
	reviewRepo := repository.NewReviewRepository(store)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithDoubleBooking(cfg.Booking.AllowDoubleBooking),
		booking.WithLogger(log),
	}
	reviewOpts := []review.ReviewServiceOption{review.WithLogger(log)}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka unavailable, events will be dropped")
		}
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
		reviewOpts = append(reviewOpts, review.WithProducer(producer, cfg.Kafka.BookingEventsTopic))
	}

	catalogService := catalogsvc.NewCatalogService(data, pricing)
	services := api.Services{
		Bookings:     booking.NewBookingService(bookingRepo, bookingOpts...),
		Reviews:      review.NewReviewService(reviewRepo, reviewOpts...),
		Availability: availability.NewAvailabilityService(bookingRepo, catalogService),
		Stats:        stats.NewStatsService(bookingRepo),
		Catalog:      catalogService,
	}

	router := api.NewRouter(api.RouterConfig{
		BasePath:       cfg.HTTP.BasePath,
		SwaggerDir:     cfg.HTTP.SwaggerDir,
		JWTSecret:      cfg.Identity.JWTSecret,
		RequestTimeout: time.Duration(cfg.HTTP.RequestTimeoutSeconds) * time.Second,
	}, services, log)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
