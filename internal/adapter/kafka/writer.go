package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/config"
	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// publishBatchTimeout bounds how long a single HTTP publish waits for
// the producer to fill a batch. kafka-go defaults to one second.
const publishBatchTimeout = 10 * time.Millisecond

// Writer produces issued recommendations to the result topic.
// It implements pipeline.BatchLoader and the HTTP server's Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured result topic.
// The pipeline hands it whole batches, so the default batching applies.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{writer: newKafkaWriter(cfg), logger: logger}
}

// NewPublisher creates a producer for one-at-a-time HTTP publishes. It
// is a separate instance so single writes do not queue behind pipeline
// batches, and it flushes after publishBatchTimeout.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Writer {
	w := newKafkaWriter(cfg)
	w.BatchTimeout = publishBatchTimeout
	return &Writer{writer: w, logger: logger}
}

func newKafkaWriter(cfg *config.Config) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
}

// LoadBatch publishes recommendations in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(recs))
	for i := range recs {
		msg, err := serializeRecommendation(recs[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

// Publish writes one recommendation issued through the HTTP API.
func (w *Writer) Publish(ctx context.Context, rec domain.Recommendation) error {
	return w.LoadBatch(ctx, []domain.Recommendation{rec})
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRecommendation keys the message by recommendation ID.
func serializeRecommendation(rec domain.Recommendation) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize recommendation: %w", err)
	}
	fallback := string(rec.Fallback)
	if fallback == "" {
		fallback = "none"
	}
	return kafkago.Message{
		Key:   []byte(rec.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "soil_type", Value: []byte(rec.Conditions.SoilType)},
			{Key: "fallback", Value: []byte(fallback)},
			{Key: "issued_at", Value: []byte(rec.IssuedAt.Format(time.RFC3339))},
		},
	}, nil
}
