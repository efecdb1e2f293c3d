package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/powerplant/plant-advisor/internal/config"
	"github.com/powerplant/plant-advisor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured result topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes recommendation sets to the result topic
// in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, sets []domain.RecommendationSet) error {
	if len(sets) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(sets))
	for i := range sets {
		msg, err := serializeToMessage(sets[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RecommendationSet into a Kafka message keyed
// by the request ID, or the set ID when the request had none.
func serializeToMessage(set domain.RecommendationSet) (kafkago.Message, error) {
	data, err := json.Marshal(set)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize recommendation set: %w", err)
	}
	key := set.RequestID
	if key == "" {
		key = set.ID
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "hardiness_zone", Value: []byte(set.Location.HardinessZone)},
			{Key: "processed_at", Value: []byte(set.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
