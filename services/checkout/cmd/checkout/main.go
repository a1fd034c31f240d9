package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
	"github.com/Skotchmaster/storefront/services/checkout/internal/config"
	"github.com/Skotchmaster/storefront/services/checkout/internal/httpserver"
	"github.com/Skotchmaster/storefront/services/checkout/internal/repo"
	"github.com/Skotchmaster/storefront/services/checkout/internal/service"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var events service.Publisher = service.NopPublisher{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer error: %v", err)
		}
		events = producer
	} else {
		logger.Warn("kafka disabled, events will not be published")
	}

	pricing, err := service.NewPricingCalculator(service.PricingRules{
		Currency:              cfg.Currency,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		TaxRate:               cfg.TaxRate,
	})
	if err != nil {
		log.Fatalf("pricing config error: %v", err)
	}

	Repo := &repo.GormRepo{DB: gdb}
	ledger := &service.InventoryLedger{Repo: Repo, Events: events}
	placement := &service.PlacementService{Repo: Repo, Ledger: ledger, Pricing: pricing, Events: events}
	lifecycle := &service.LifecycleService{Repo: Repo, Ledger: ledger, Events: events}
	orders := &service.OrderService{Repo: Repo}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: Repo, Pricing: pricing, MaxAddQuantity: cfg.MaxAddQuantity},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Placement: placement,
			Lifecycle: lifecycle,
			Orders:    orders,
			Intents:   &service.IntentService{Repo: Repo, Placement: placement, TTL: cfg.IntentTTL},
		},
		AdminHandler: &httpserver.AdminHTTP{
			Catalog:   &service.CatalogService{Repo: Repo, Events: events, Currency: cfg.Currency},
			Orders:    orders,
			Lifecycle: lifecycle,
		},
		InventoryHandler: &httpserver.InventoryHTTP{Ledger: ledger},
		JWTSecret:        cfg.JWTAccessSecret,
		DB:               gdb,
	})

	addr := ":" + strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("starting checkout service", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("server stopped")
}
