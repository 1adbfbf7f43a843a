package notification

import (
	"context"
	"log/slog"
)

const (
	// KindSqueakMade is sent after the node signs a new squeak or resqueak.
	KindSqueakMade = "squeak_made"
	// KindSqueakDeleted is sent after a squeak is removed from the node.
	KindSqueakDeleted = "squeak_deleted"
	// KindOfferPaid is sent after an offer invoice is paid and the squeak unlocked.
	KindOfferPaid = "offer_paid"
)

// Message describes a notification payload. Subject is the squeak hash or
// other identifier the event is about.
type Message struct {
	Kind    string
	Subject string
	Body    string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		slog.String("kind", message.Kind),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}

// Recorder keeps every message it is sent. Tests use it to assert on events.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Send(_ context.Context, message Message) error {
	r.Messages = append(r.Messages, message)
	return nil
}

// Last returns the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}
