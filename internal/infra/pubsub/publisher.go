package pubsub

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=pubsub

const TopicRunCompleted = "notification.run.completed"

// RunCompletedEvent is emitted after a scheduler run that dispatched at
// least one notification, for downstream consumers (analytics, throttling).
type RunCompletedEvent struct {
	RunAt       time.Time `json:"run_at"`
	Date        string    `json:"date"`
	MinuteOfDay int       `json:"minute_of_day"`
	Checked     int       `json:"checked"`
	Sent        int       `json:"sent"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
}

type Publisher interface {
	PublishRunCompleted(ctx context.Context, event RunCompletedEvent) error
	io.Closer
}
