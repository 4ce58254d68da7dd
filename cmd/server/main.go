package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"rates-service/internal/api"
	"rates-service/internal/bootstrap"
	"rates-service/internal/cache"
	"rates-service/internal/config"
	"rates-service/internal/kafka"
	"rates-service/internal/logger"
	"rates-service/internal/services"
	"rates-service/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := cache.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		zl.Fatal("redis connection failed", zap.Error(err))
	}
	zl.Info("redis connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rateCache := cache.New(
		cache.NewRedisStore(redisClient),
		cache.WithLogger(zl),
		cache.WithMetrics(cache.NewMetrics(registry)),
	)

	kafkaBundle, err := kafka.InitKafka(cfg, zl)
	if err != nil {
		zl.Fatal("kafka init failed", zap.Error(err))
	}

	var publisher services.Publisher
	if kafkaBundle != nil {
		publisher = kafkaBundle.RateEventsProducer
	}

	app := bootstrap.InitBootstrap(rateCache, api.NewClient(cfg), publisher, zl)

	if kafkaBundle != nil {
		workers.StartAllWorkers(ctx, kafkaBundle.RefreshConsumer, workers.RateHandlers(app.Services.Rates), zl)
		if err := bootstrap.StartCronJobs(ctx, cfg, kafkaBundle, zl); err != nil {
			zl.Fatal("prewarmer", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           bootstrap.InitRoutes(app.Handlers, registry, zl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := bootstrap.GracefulShutdown(srv, cancel, redisClient, kafkaBundle, zl)

	zl.Info("server started", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server error", zap.Error(err))
	}
	<-stopped
	zl.Info("server stopped")
}
