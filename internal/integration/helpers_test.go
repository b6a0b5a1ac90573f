//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker for the lifetime of the test and
// returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("storm-forecast-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type observation struct {
	StormID    string    `json:"storm_id"`
	ObservedAt time.Time `json:"observed_at"`
	CurrentLat float64   `json:"current_lat"`
	CurrentLon float64   `json:"current_lon"`
	MaxWind    float64   `json:"max_wind_speed"`
	Pressure   float64   `json:"central_pressure"`
	WindShear  float64   `json:"wind_shear"`
	SteeringU  float64   `json:"steering_flow_u"`
	SteeringV  float64   `json:"steering_flow_v"`
}

// observations returns n Caribbean storm fixes six hours apart.
func observations(t *testing.T, n int) []kafkago.Message {
	t.Helper()
	base := time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC)

	msgs := make([]kafkago.Message, 0, n)
	for i := range n {
		obs := observation{
			StormID:    fmt.Sprintf("AL%02d2024", i+1),
			ObservedAt: base.Add(time.Duration(6*i) * time.Hour),
			CurrentLat: 15 + float64(i)*0.5,
			CurrentLon: -62 - float64(i),
			MaxWind:    90 + float64(10*i),
			Pressure:   1000 - float64(3*i),
			WindShear:  8,
			SteeringU:  -6,
			SteeringV:  2,
		}
		payload, err := json.Marshal(obs)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{Key: []byte(obs.StormID), Value: payload, Time: obs.ObservedAt})
	}
	return msgs
}

type forecastMessage struct {
	Result  domain.ForecastResult
	Key     string
	Headers map[string]string
}

// readForecast reads a single message from the sink consumer and deserializes it.
func readForecast(ctx context.Context, t *testing.T, consumer *kafkago.Reader) forecastMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var result domain.ForecastResult
	require.NoError(t, json.Unmarshal(msg.Value, &result), "unmarshal sink message")

	return forecastMessage{Result: result, Key: string(msg.Key), Headers: headers}
}
