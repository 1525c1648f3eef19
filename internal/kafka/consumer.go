// Package kafka ingests candidate reports published by external
// producers and routes them through the same admission path as the
// detectors.
package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"alerts-backend/internal/engine"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/models"
)

// Consumer reads candidate reports from a topic.
type Consumer struct {
	reader *kafkago.Reader
	engine *engine.Engine
	logger *logging.Logger
}

func NewConsumer(brokers []string, topic, groupID string, eng *engine.Engine, logger *logging.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{reader: reader, engine: eng, logger: logger}
}

// Start consumes until the context is cancelled. Malformed or incomplete
// messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Infof("Kafka consumer started on topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Infof("Kafka consumer stopped")
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		var candidate models.Candidate
		if err := json.Unmarshal(msg.Value, &candidate); err != nil {
			c.logger.Errorf("Unmarshal candidate failed: %v", err)
			continue
		}
		if candidate.ClientID == "" || candidate.AlertType == "" || !candidate.Severity.Valid() {
			c.logger.Errorf("Invalid candidate message: missing client_id, alert_type, or severity")
			continue
		}
		if candidate.Source == "" {
			candidate.Source = "kafka"
		}

		created, err := c.engine.ProcessCandidate(ctx, candidate)
		if err != nil {
			c.logger.Errorf("Failed to process candidate (%s, %s): %v", candidate.ClientID, candidate.AlertType, err)
			continue
		}
		if created != nil {
			c.logger.Infof("Ingested alert %s from topic", created.ID)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
