package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"catalog/internal/events"
	"catalog/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var (
	// events tail flags
	tailTopics []string
	tailQueue  string
)

// eventsCmd groups the broker commands.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events mirrored to RabbitMQ",
}

// eventsTailCmd prints forwarded events as they arrive.
var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print events from the broker as JSON lines",
	Long: `Bind a queue to EVENTS_EXCHANGE and print every event as one JSON line.

Examples:
  catalog events tail                              # every topic
  catalog events tail --topic productCreated       # one topic
  catalog events tail --topic productCreated --topic productDeleted`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if cfg.Events.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required for events tail")
		}
		keys, err := routingKeys(tailTopics)
		if err != nil {
			return err
		}

		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.Events.RabbitMQURL, Exchange: cfg.Events.Exchange}, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		queue := tailQueue
		if queue == "" {
			queue = cfg.Events.Queue
		}
		out := cmd.OutOrStdout()
		return client.Consume(cmd.Context(), queue, keys, func(msg amqp.Delivery) error {
			return printEvent(out, msg)
		})
	},
}

func init() {
	eventsTailCmd.Flags().StringSliceVar(&tailTopics, "topic", nil, "Topic to follow (repeatable, default all)")
	eventsTailCmd.Flags().StringVar(&tailQueue, "queue", "", "Queue name (default EVENTS_QUEUE)")
	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}

// routingKeys validates the requested topics; none means every topic.
func routingKeys(topics []string) ([]string, error) {
	if len(topics) == 0 {
		return []string{"#"}, nil
	}
	for _, t := range topics {
		if !knownTopic(t) {
			return nil, fmt.Errorf("unknown topic %q", t)
		}
	}
	return topics, nil
}

// tailLine is one printed event.
type tailLine struct {
	Topic     string          `json:"topic"`
	MessageID string          `json:"messageId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func printEvent(w io.Writer, msg amqp.Delivery) error {
	if !json.Valid(msg.Body) {
		return fmt.Errorf("event %s has a non-JSON body", msg.MessageId)
	}
	line, err := json.Marshal(tailLine{
		Topic:     msg.RoutingKey,
		MessageID: msg.MessageId,
		Timestamp: msg.Timestamp,
		Payload:   msg.Body,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(line))
	return err
}

// knownTopic reports whether topic is published by the catalog.
func knownTopic(topic string) bool {
	for _, t := range events.Topics {
		if string(t) == topic {
			return true
		}
	}
	return false
}
