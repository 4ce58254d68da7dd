package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rates-service/internal/kafka"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GracefulShutdown waits for SIGINT or SIGTERM, stops background work and
// gives in-flight requests 10s to finish. The returned channel is closed
// once everything is released.
func GracefulShutdown(
	srv *http.Server,
	cancel context.CancelFunc,
	redisClient *redis.Client,
	kafkaBundle *kafka.KafkaBundle,
	logger *zap.Logger,
) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logger.Info("shutting down gracefully")
		cancel()

		ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
		}

		kafkaBundle.Close()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("redis close error", zap.Error(err))
			}
		}
	}()
	return stopped
}
