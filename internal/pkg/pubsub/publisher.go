package pubsub

import (
	"context"

	"pesanet/kopa_lending/internal/pkg/logger"

	gcppubsub "cloud.google.com/go/pubsub"
)

// TopicInterface is the slice of the SDK topic the publisher needs;
// tests swap in a fake.
type TopicInterface interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
	Stop()
}

type topicAdapter struct {
	topic *gcppubsub.Topic
}

func (t *topicAdapter) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	result := t.topic.Publish(ctx, &gcppubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	return result.Get(ctx)
}

func (t *topicAdapter) Stop() {
	t.topic.Stop()
}

// Publisher pushes notification messages to a single Pub/Sub topic.
type Publisher struct {
	client *gcppubsub.Client
	topic  TopicInterface
}

func NewPublisher(ctx context.Context, projectID string, topicName string) (*Publisher, error) {
	client, err := gcppubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		client: client,
		topic:  &topicAdapter{topic: client.Topic(topicName)},
	}, nil
}

// NewPublisherWith wires a prebuilt topic; used by tests.
func NewPublisherWith(topic TopicInterface) *Publisher {
	return &Publisher{topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, data []byte, attributes map[string]string) error {
	id, err := p.topic.Publish(ctx, data, attributes)
	if err != nil {
		logger.Error(ctx, "pubsub publish failed: %v", err)
		return err
	}
	logger.Debug(ctx, "pubsub message published: %s", id)
	return nil
}

func (p *Publisher) Close() error {
	if p.topic != nil {
		p.topic.Stop()
	}
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
