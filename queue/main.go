package queue

import (
	"encoding/json"
	"fmt"
	"time"

	models "github.com/sabordos/cli/models"
)

const Source = "sabordos-cli"

// Payload is the envelope of every message this tool publishes.
type Payload struct {
	Events  []string         `json:"events,omitempty"`
	Source  string           `json:"source,omitempty"`
	Date    int64            `json:"date,omitempty"`
	Payload models.SeedEvent `json:"payload"`
}

func NewPayload(event models.SeedEvent) Payload {
	return Payload{
		Events:  []string{"users-seeded", "reviews-seeded"},
		Source:  Source,
		Date:    time.Now().Unix(),
		Payload: event,
	}
}

func (p Payload) Marshal() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Queue interface {
	SendMessage(queueName string, payload string, delay int) error
	Test(queueName string) error
	Close()
}

func CreateQueue(queueSystem string, connection models.Queue) (Queue, error) {
	var q Queue
	var err error
	switch queueSystem {
	case "sqs":
		var s *SQSQueue
		if s, err = CreateSQSQueue(connection); err == nil {
			q = s
		}
	case "kafka":
		var k *KafkaQueue
		if k, err = CreateKafkaQueue(connection); err == nil {
			q = k
		}
	case "rabbitmq":
		var r *RabbitMQ
		if r, err = CreateRabbitMQ(connection); err == nil {
			q = r
		} else if r != nil {
			r.Close()
		}
	case "webhook":
		var w *WebhookQueue
		if w, err = CreateWebhookQueue(connection); err == nil {
			q = w
		}
	default:
		err = fmt.Errorf("unknown queue system %q", queueSystem)
	}
	return q, err
}
