package adapters

import (
	"context"
	"encoding/json"
	"log/slog"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	"coursecred/internal/platform/kafka"
	dErrors "coursecred/pkg/domain-errors"
)

var _ ports.Notifier = (*KafkaNotifier)(nil)

// Publisher is the subset of the Kafka producer the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaNotifier publishes generation notifications to a topic consumed by the
// host messaging service. Records are keyed by learner id.
type KafkaNotifier struct {
	publisher Publisher
	topic     string
	logger    *slog.Logger
}

func NewKafkaNotifier(publisher Publisher, topic string, logger *slog.Logger) *KafkaNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaNotifier{publisher: publisher, topic: topic, logger: logger}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification models.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode notification")
	}
	msg := kafka.Message{
		Topic: n.topic,
		Key:   []byte(notification.Recipient.LearnerID.String()),
		Value: payload,
		Headers: map[string]string{
			"content-type": "application/json",
			"message-name": notification.Name,
		},
	}
	if err := n.publisher.Publish(ctx, msg); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to publish notification: "+err.Error())
	}
	n.logger.DebugContext(ctx, "notification published",
		"topic", n.topic,
		"learner_id", notification.Recipient.LearnerID,
	)
	return nil
}

// LogNotifier only logs notifications. It stands in when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification models.Notification) error {
	n.logger.InfoContext(ctx, "credential notification",
		"name", notification.Name,
		"learner_id", notification.Recipient.LearnerID,
		"credential_link", notification.Context["credential_link"],
	)
	return nil
}
