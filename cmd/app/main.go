package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	httpin "cart_service/internal/adapters/inbound/http"
	kafkain "cart_service/internal/adapters/inbound/kafka"
	"cart_service/internal/adapters/outbound/cache"
	"cart_service/internal/adapters/outbound/catalogapi"
	"cart_service/internal/adapters/outbound/memory"
	"cart_service/internal/adapters/outbound/notify"
	"cart_service/internal/adapters/outbound/postgres"
	redisstore "cart_service/internal/adapters/outbound/redis"
	"cart_service/internal/app/config"
	"cart_service/internal/app/runtime"
	"cart_service/internal/core/service"
	"cart_service/internal/migrations"
	"cart_service/internal/ports/outbound"
)

func main() {
	ctx, stop := runtime.NotifyContext(context.Background())
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var closers runtime.Closers
	defer closers.Close()

	slot, err := openSlotStore(ctx, cfg, &closers)
	if err != nil {
		closers.Close()
		log.Fatalf("slot store: %v", err)
	}

	catalog, err := catalogapi.New(cfg.CatalogURL, cfg.CatalogTimeout)
	if err != nil {
		closers.Close()
		log.Fatalf("catalog: %v", err)
	}

	prices, err := httpin.NewPriceFormatter(cfg.PriceLocale, cfg.PriceCurrency)
	if err != nil {
		closers.Close()
		log.Fatalf("prices: %v", err)
	}

	products := cache.NewMemoryCache()
	feed := notify.NewFeed(cfg.NotifyHistory)
	svc := service.NewCartService(slot, cfg.CartSlotKey, catalog, products, feed)

	n := svc.Load(ctx)
	log.Printf("[startup] cart restored: %d items (backend=%s slot=%q)", n, cfg.SlotBackend, cfg.CartSlotKey)

	// HTTP
	handlers := httpin.NewHandlers(svc, feed, products, prices)
	mux := httpin.NewMux(handlers, svc, prices)
	httpSrv := runtime.NewHTTPServer(cfg.HTTPAddr, mux)
	if err := httpSrv.Start(); err != nil {
		closers.Close()
		log.Fatalf("http: %v", err)
	}

	// kafka consumer
	if cfg.KafkaEnabled() {
		consumer := kafkain.NewConsumer(kafkain.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  cfg.KafkaConsumerGroup,
			MinBytes: cfg.KafkaMinBytes,
			MaxBytes: cfg.KafkaMaxBytes,
		}, svc)
		closers.Add("kafka", consumer.Close)

		go consumer.Run(ctx)
		log.Printf("[kafka] consuming topic=%s group=%s", cfg.KafkaTopic, cfg.KafkaConsumerGroup)
	}

	<-ctx.Done()
	log.Printf("[shutdown] signal received")

	if err := httpSrv.Shutdown(context.Background(), cfg.ShutdownTimeout); err != nil {
		log.Printf("[shutdown] http: %v", err)
	}

	hits, misses := products.Stats()
	log.Printf("[shutdown] product cache hits=%d misses=%d size=%d", hits, misses, products.Len(ctx))
	log.Printf("[shutdown] bye")
}

func openSlotStore(ctx context.Context, cfg config.Config, closers *runtime.Closers) (outbound.SlotStore, error) {
	switch cfg.SlotBackend {
	case config.SlotBackendPostgres:
		pool := postgres.DefaultPoolOptions()
		pool.MaxConns = int32(cfg.DBMaxConns)
		pool.MinConns = int32(cfg.DBMinConns)
		db, err := postgres.New(ctx, cfg.DatabaseURL, pool)
		if err != nil {
			return nil, err
		}
		closers.Add("postgres", func() error { db.Close(); return nil })

		// migrations
		var src fs.FS = migrations.FS
		if cfg.MigrationsDir != "" {
			src = os.DirFS(cfg.MigrationsDir)
		}
		migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := postgres.RunMigrations(migCtx, db.Pool, src); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return postgres.NewSlotStore(db.Pool), nil

	case config.SlotBackendRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		closers.Add("redis", client.Close)
		return redisstore.NewSlotStore(client, "cart_service:"), nil

	default:
		log.Printf("[startup] using in-memory slot store; cart will not survive restarts")
		return memory.NewSlotStore(), nil
	}
}
