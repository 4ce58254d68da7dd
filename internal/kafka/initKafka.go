package kafka

import (
	"rates-service/internal/config"

	"go.uber.org/zap"
)

type KafkaBundle struct {
	RateEventsProducer *Producer
	RefreshProducer    *Producer
	RefreshConsumer    *Consumer
}

// InitKafka returns nil when no brokers are configured.
func InitKafka(cfg *config.Config, logger *zap.Logger) (*KafkaBundle, error) {
	if !cfg.KafkaEnabled() {
		logger.Info("kafka disabled, no brokers configured")
		return nil, nil
	}

	events, err := NewProducer(cfg.KafkaBrokers, cfg.RateEventsTopic, logger)
	if err != nil {
		return nil, err
	}
	refresh, err := NewProducer(cfg.KafkaBrokers, cfg.RefreshTopic, logger)
	if err != nil {
		events.Close()
		return nil, err
	}
	consumer, err := NewConsumer(cfg.KafkaBrokers, cfg.RefreshTopic, cfg.RefreshGroup, logger)
	if err != nil {
		events.Close()
		refresh.Close()
		return nil, err
	}

	return &KafkaBundle{
		RateEventsProducer: events,
		RefreshProducer:    refresh,
		RefreshConsumer:    consumer,
	}, nil
}

func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	b.RefreshConsumer.Stop()
	b.RefreshProducer.Close()
	b.RateEventsProducer.Close()
}
