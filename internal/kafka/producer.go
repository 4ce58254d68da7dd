package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type Producer struct {
	topic  string
	client *kgo.Client
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create Kafka producer: %w", err)
	}

	logger.Info("kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{topic: topic, client: client, logger: logger}, nil
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := p.client.ProduceSync(ctx, msg)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("publish to %s: %w", p.topic, r.Err)
		}
	}

	p.logger.Debug("published", zap.String("topic", p.topic), zap.ByteString("key", key))
	return nil
}

func (p *Producer) PublishAsync(key, value []byte) {
	go func() {
		if err := p.Publish(key, value); err != nil {
			p.logger.Warn("kafka async publish failed", zap.Error(err))
		}
	}()
}

// PublishObjectAsync JSON-encodes obj and publishes it without blocking the caller.
func (p *Producer) PublishObjectAsync(key []byte, obj any) {
	value, err := json.Marshal(obj)
	if err != nil {
		p.logger.Warn("marshal object for Kafka", zap.ByteString("key", key), zap.Error(err))
		return
	}
	p.PublishAsync(key, value)
}
