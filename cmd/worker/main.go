package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/sporthub/config"
	"github.com/Domenick1991/sporthub/internal/bootstrap"
	"github.com/Domenick1991/sporthub/internal/email"
	"github.com/Domenick1991/sporthub/internal/kafka"
	"github.com/Domenick1991/sporthub/internal/logger"
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

	if !cfg.Kafka.Enabled() {
		log.Fatal("kafka.brokers must be set for the notification worker")
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingEventsTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.WithFields(logrus.Fields{"topic": topic, "group": cfg.Kafka.GroupID}).Info("notification worker started")
	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.Event) error {
		if err := sender.Send(ctx, event); err != nil {
			log.WithError(err).WithField("booking_id", event.BookingID).Error("send notification")
		}
		return nil
	}); err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Info("notification worker stopped")
}
