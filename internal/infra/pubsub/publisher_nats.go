package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mindermate/notification-scheduler/internal/observability/tracing"
)

type NATSPublisher struct {
	publisher message.Publisher
	logger    watermill.LoggerAdapter
}

type NATSPublisherConfig struct {
	URL string
}

// NewNATSPublisherWithStream provisions the event stream and returns a
// publisher bound to it.
func NewNATSPublisherWithStream(ctx context.Context, cfg NATSPublisherConfig) (*NATSPublisher, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	conn, err := nc.Connect(cfg.URL, nc.Timeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamName := "NOTIFICATION_EVENTS"

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Stream for notification scheduler events",
		Subjects:    []string{TopicRunCompleted},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		MaxBytes:    100 * 1024 * 1024, // 100MB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	slog.Info("NATS JetStream stream configured",
		slog.String("stream", streamName),
		slog.String("subject", TopicRunCompleted),
	)

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: []nc.Option{nc.Timeout(10 * time.Second)},
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
			Marshaler: &nats.NATSMarshaler{},
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return &NATSPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *NATSPublisher) PublishRunCompleted(ctx context.Context, event RunCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal run completed event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	tracing.InjectToMap(ctx, msg.Metadata)

	if err := p.publisher.Publish(TopicRunCompleted, msg); err != nil {
		return fmt.Errorf("failed to publish run completed event: %w", err)
	}

	slog.Debug("run completed event published",
		"date", event.Date,
		"sent", event.Sent,
	)

	return nil
}

func (p *NATSPublisher) Close() error {
	return p.publisher.Close()
}
