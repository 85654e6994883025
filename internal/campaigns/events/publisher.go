package events

import (
	"context"

	"utmforge/pkg/kafka"
	"utmforge/pkg/logger"
	"utmforge/pkg/model"
)

const (
	EventCampaignGenerated = "campaign.generated"
	EventCampaignBuilt     = "campaign.built"

	schemaVersion = "1"
	sourceService = "utmforge"
)

// Publisher emits campaign lifecycle events. Publishing is best-effort:
// callers log failures and carry on, a lost event never fails a request.
type Publisher interface {
	PublishCampaignEvent(ctx context.Context, eventType string, link *model.CampaignLink) error
	Close() error
}

type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(brokers, topic, log)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{producer: producer}, nil
}

func (p *KafkaPublisher) PublishCampaignEvent(ctx context.Context, eventType string, link *model.CampaignLink) error {
	msg := kafka.NewMessage().
		WithKey(link.ID).
		WithValue(link).
		WithEventType(eventType).
		WithSource(sourceService).
		WithSchemaVersion(schemaVersion).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCampaignEvent(ctx context.Context, eventType string, link *model.CampaignLink) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
