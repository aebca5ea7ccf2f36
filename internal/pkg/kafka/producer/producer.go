package producer

import (
	"context"
	"fmt"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// ProducerInterface is the subset of the confluent producer this package
// needs; tests swap in a fake.
type ProducerInterface interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

// EventPublisher is what the services depend on.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg []byte) error
}

// KafkaProducer publishes status events to the lending events topic and
// waits for the delivery report on every send.
type KafkaProducer struct {
	producer ProducerInterface
	topic    string
}

func NewKafkaProducer() (*KafkaProducer, error) {
	kafkaConfig := &kafka.ConfigMap{
		"bootstrap.servers": configs.KAFKA_SERVER,
		"security.protocol": configs.KAFKA_SECURITY_PROTOCOL,
		"sasl.mechanisms":   configs.KAFKA_SASL_MECHANISM,
		"sasl.username":     configs.KAFKA_SASL_USERNAME,
		"sasl.password":     configs.KAFKA_SASL_PASSWORD,
		"client.id":         configs.KAFKA_CLIENT_ID,
	}

	p, err := kafka.NewProducer(kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	logger.Info("kafka producer created for topic %s", configs.KAFKA_TOPIC)

	return &KafkaProducer{
		producer: p,
		topic:    configs.KAFKA_TOPIC,
	}, nil
}

// NewKafkaProducerWith wires a prebuilt producer; used by tests.
func NewKafkaProducerWith(p ProducerInterface, topic string) *KafkaProducer {
	return &KafkaProducer{producer: p, topic: topic}
}

func (kp *KafkaProducer) Publish(ctx context.Context, key string, msg []byte) error {
	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err := kp.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &kp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          msg,
	}, deliveryChan)
	if err != nil {
		logger.Error(ctx, "failed to produce kafka message: %v", err)
		return err
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected event type")
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", m.TopicPartition.Error)
		}
	case <-time.After(10 * time.Second):
		return fmt.Errorf("timeout waiting for kafka delivery report")
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (kp *KafkaProducer) Close() error {
	kp.producer.Flush(5000)
	kp.producer.Close()
	return nil
}
