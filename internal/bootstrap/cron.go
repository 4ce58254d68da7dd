package bootstrap

import (
	"context"

	"rates-service/internal/config"
	"rates-service/internal/cron"
	"rates-service/internal/kafka"

	"go.uber.org/zap"
)

// StartCronJobs starts the prewarmer when Kafka is enabled and commands are configured.
func StartCronJobs(ctx context.Context, cfg *config.Config, kafkaBundle *kafka.KafkaBundle, logger *zap.Logger) error {
	if kafkaBundle == nil {
		return nil
	}

	commands, err := cron.ParseCommands(cfg.PrewarmCommands)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		logger.Info("no prewarm commands configured")
		return nil
	}

	prewarmer := cron.NewPrewarmer(commands, kafkaBundle.RefreshProducer, cfg.PrewarmInterval, logger)
	go prewarmer.Start(ctx)
	return nil
}
