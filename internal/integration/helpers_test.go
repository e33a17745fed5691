//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"testing"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("crop-advisor-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type farmRequestCase struct {
	Name       string          `json:"name"`
	Conditions json.RawMessage `json:"conditions"`
	Crops      []string        `json:"crops"`
	Invalid    bool            `json:"invalid"`
}

// location reads the location field from the raw conditions.
func (c farmRequestCase) location(t *testing.T) string {
	t.Helper()
	var fc domain.FarmConditions
	require.NoError(t, json.Unmarshal(c.Conditions, &fc))
	return fc.Location
}

// loadFarmRequests reads the request fixture shared with the pipeline tests.
func loadFarmRequests(t *testing.T) []farmRequestCase {
	t.Helper()
	data, err := os.ReadFile("../pipeline/testdata/farm_requests.json")
	require.NoError(t, err)
	var cases []farmRequestCase
	require.NoError(t, json.Unmarshal(data, &cases))
	return cases
}
