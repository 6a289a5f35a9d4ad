//go:build integration
// +build integration

package rabbitmq_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"catalog/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amqp "github.com/streadway/amqp"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRabbitMQ(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start RabbitMQ container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get RabbitMQ endpoint: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
	return fmt.Sprintf("amqp://guest:guest@%s/", endpoint), cleanup
}

func TestClient_ForwardAndConsume(t *testing.T) {
	url, cleanup := setupRabbitMQ(t)
	defer cleanup()

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url, Exchange: "catalog.events"}, discard())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	received := make(chan amqp.Delivery, 1)
	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- client.Consume(ctx, "catalog.test", []string{"productCreated"}, func(msg amqp.Delivery) error {
			received <- msg
			return nil
		})
	}()

	// The queue is bound asynchronously; retry until the message lands.
	var msg amqp.Delivery
	require.Eventually(t, func() bool {
		if err := client.Forward(ctx, "productCreated", map[string]any{"id": 1, "name": "Laptop"}); err != nil {
			return false
		}
		select {
		case msg = <-received:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, "productCreated", msg.RoutingKey)
	assert.Equal(t, "application/json", msg.ContentType)
	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "Laptop", body["name"])

	cancel()
	assert.NoError(t, <-consumeErr)
}
