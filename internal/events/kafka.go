package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer is the outbound sink the relay writes change events to.
type Producer interface {
	SendMessage(ctx context.Context, key []byte, value []byte) error
	Close() error
}

// KafkaProducer publishes change events to a kafka topic.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaProducer) SendMessage(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer logs events instead of publishing them; it stands in when
// no broker is configured.
type ConsoleProducer struct {
	log *zap.Logger
}

func NewConsoleProducer(log *zap.Logger) *ConsoleProducer {
	return &ConsoleProducer{log: log}
}

func (p *ConsoleProducer) SendMessage(_ context.Context, key, value []byte) error {
	p.log.Info("change event", zap.ByteString("key", key), zap.ByteString("value", value))
	return nil
}

func (p *ConsoleProducer) Close() error { return nil }

// Relay drains a bus subscription and forwards every event to the producer
// until the context is canceled. Forwarding failures are logged and do not
// stop the relay; the bus stays the source of truth for in-process
// observers.
func Relay(ctx context.Context, bus *Bus, producer Producer, log *zap.Logger) error {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub.ID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-sub.C:
			if !ok {
				return nil
			}
			value, err := json.Marshal(e)
			if err != nil {
				log.Error("marshal change event", zap.Error(err))
				continue
			}
			if err := producer.SendMessage(ctx, []byte(e.Topic), value); err != nil {
				log.Error("forward change event", zap.Error(err))
			}
		}
	}
}
