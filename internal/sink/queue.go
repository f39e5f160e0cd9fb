package sink

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/rabbitmq"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/telemetry"
)

// QueueSink publishes telemetry events to RabbitMQ, using the topic as the
// routing key on a configured exchange. This is the default publish path.
type QueueSink struct {
	conn     *rabbitmq.Connection
	exchange string
	logger   *zap.Logger
}

// NewQueueSink creates a QueueSink. An empty exchange publishes through the
// default exchange, routing directly to the queue named by the topic.
func NewQueueSink(conn *rabbitmq.Connection, exchange string, logger *zap.Logger) *QueueSink {
	return &QueueSink{
		conn:     conn,
		exchange: exchange,
		logger:   logger,
	}
}

// Publish serializes the event and hands it to the broker
func (s *QueueSink) Publish(topic string, event *telemetry.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry event: %w", err)
	}

	if err := s.conn.PublishMessage(s.exchange, topic, body); err != nil {
		return fmt.Errorf("failed to publish telemetry event to %s: %w", topic, err)
	}

	s.logger.Debug("Published telemetry event",
		zap.String("topic", topic),
		zap.String("mid", event.MID),
	)
	return nil
}
