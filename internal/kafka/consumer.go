package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type Consumer struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

func NewConsumer(brokers []string, topic, group string, logger *zap.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
	if err != nil {
		return nil, fmt.Errorf("create Kafka consumer: %w", err)
	}

	logger.Info("kafka consumer initialized", zap.String("topic", topic), zap.String("group", group))
	return &Consumer{client: client, topic: topic, logger: logger}, nil
}

// Start polls in the background until ctx is done or the consumer is stopped.
// Refresh commands are only useful while fresh, so a new group starts at the end of the topic.
func (c *Consumer) Start(ctx context.Context, handler func(key, value []byte)) {
	go func() {
		for {
			fetches := c.client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				c.logger.Info("kafka consumer stopped", zap.String("topic", c.topic))
				return
			}
			for _, fe := range fetches.Errors() {
				c.logger.Warn("kafka fetch error",
					zap.String("topic", fe.Topic),
					zap.Int32("partition", fe.Partition),
					zap.Error(fe.Err))
			}

			iter := fetches.RecordIter()
			for !iter.Done() {
				record := iter.Next()
				handler(record.Key, record.Value)
			}
		}
	}()
}

func (c *Consumer) Stop() {
	c.client.Close()
}
