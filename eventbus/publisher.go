package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	nc "github.com/nats-io/nats.go"
)

// Publisher is the minimal event surface the services depend on.
type Publisher interface {
	Publish(topic string, payload any) error
	Close() error
}

// NATSPublisher publishes JSON payloads to NATS JetStream via watermill.
type NATSPublisher struct {
	pub message.Publisher
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher creates a new NATS JetStream publisher.
func NewNATSPublisher(natsURL string, logger watermill.LoggerAdapter) (*NATSPublisher, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := nats.JetStreamConfig{
		Disabled:       false,
		AutoProvision:  true,
		PublishOptions: []nc.PubOpt{},
	}

	pub, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Marshaler:         &nats.GobMarshaler{},
			JetStream:         jsConfig,
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return &NATSPublisher{pub: pub}, nil
}

func (p *NATSPublisher) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), body)
	return p.pub.Publish(topic, msg)
}

func (p *NATSPublisher) Close() error {
	return p.pub.Close()
}

// NoopPublisher drops every event. Used when no NATS URL is configured and in
// tests.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(string, any) error { return nil }
func (NoopPublisher) Close() error              { return nil }
