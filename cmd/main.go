package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"deliverytrack/internal/envcfg"
	"deliverytrack/internal/events"
	"deliverytrack/internal/geo"
	"deliverytrack/internal/logger"
	"deliverytrack/internal/model"
	"deliverytrack/internal/server"
	"deliverytrack/internal/service"
	"deliverytrack/internal/store"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg := envcfg.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = "ChangeMe#123"
		log.Warn("ADMIN_PASSWORD not set, using the default development password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash admin password", zap.Error(err))
	}
	initial := model.DefaultConfig(time.Now().UTC())
	initial.ManagerPasswordHash = string(hash)

	var (
		couriers    store.Store[model.Courier]
		orders      store.Store[model.Order]
		deliveries  store.Store[model.Delivery]
		configStore store.ConfigStore
	)
	switch cfg.Storage {
	case "file":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatal("create data directory", zap.Error(err))
		}
		couriers = store.NewFile[model.Courier]("courier", filepath.Join(cfg.DataDir, "couriers.json"))
		orders = store.NewFile[model.Order]("order", filepath.Join(cfg.DataDir, "orders.json"))
		deliveries = store.NewFile[model.Delivery]("delivery", filepath.Join(cfg.DataDir, "deliveries.json"))
		configStore, err = store.NewFileConfig(filepath.Join(cfg.DataDir, "config.json"), initial)
		if err != nil {
			log.Fatal("open configuration file", zap.Error(err))
		}
		log.Info("using file storage", zap.String("dir", cfg.DataDir))
	case "memory":
		couriers = store.NewMemory[model.Courier]("courier")
		orders = store.NewMemory[model.Order]("order")
		deliveries = store.NewMemory[model.Delivery]("delivery")
		configStore = store.NewMemoryConfig(initial)
		log.Info("using in-memory storage")
	default:
		log.Fatal("unknown STORAGE engine", zap.String("storage", cfg.Storage))
	}

	locationIQ := geo.NewLocationIQ(cfg.LocationIQBaseURL, cfg.LocationIQKey)
	var router geo.Router
	if cfg.LocationIQKey != "" {
		router = locationIQ
	} else {
		log.Warn("LOCATIONIQ_API_KEY not set, routing falls back to air distance")
	}

	bus := events.NewBus(0)

	svc := service.New(couriers, orders, deliveries, configStore, locationIQ, router, bus, log)
	srv := server.New(svc, log)

	var producer events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing change events to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		producer = events.NewConsoleProducer(log)
	}
	defer producer.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, cfg.Port)
	})
	g.Go(func() error {
		return events.Relay(ctx, bus, producer, log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("shutdown complete")
}
