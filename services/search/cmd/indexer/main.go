package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
	"github.com/Skotchmaster/storefront/services/search/internal/projector"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "search-indexer"
	}
	config.MustNonEmpty(cfg.ESURL, "ES_URL")
	config.MustNonEmptyList(cfg.KafkaBrokers, "KAFKA_BROKERS")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	es, err := projector.NewClient(initCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	cancel()
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	consumer, err := mykafka.NewConsumer(cfg.KafkaBrokers, cfg.ServiceName, events.TopicInventory)
	if err != nil {
		log.Fatalf("kafka consumer error: %v", err)
	}

	p := &projector.Projector{ES: es, Index: config.EnvDefault("ES_INDEX", projector.DefaultIndex)}

	logger.Info("starting availability projector", "topic", events.TopicInventory)
	runErr := consumer.Run(ctx, p.HandleMessage)
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if runErr != nil {
		logger.Error("consumer stopped", "error", runErr)
		os.Exit(1)
	}
	logger.Info("projector stopped")
}
