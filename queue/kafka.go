package queue

import (
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	models "github.com/sabordos/cli/models"
)

type KafkaQueue struct {
	Name         string
	Producer     *kafka.Producer
	DeliveryChan chan kafka.Event
}

const testTimeout = 5 * time.Second

func kafkaConfig(connection models.Queue) kafka.ConfigMap {
	configMap := kafka.ConfigMap{
		"bootstrap.servers": connection.Broker,
	}
	if connection.Mechanism != "" {
		configMap["sasl.mechanisms"] = connection.Mechanism // "PLAIN"
		configMap["sasl.username"] = connection.Username
		configMap["sasl.password"] = connection.Password
	}
	if connection.Security != "" {
		configMap["security.protocol"] = connection.Security // "SASL_PLAINTEXT"
	}
	return configMap
}

func CreateKafkaQueue(connection models.Queue) (*KafkaQueue, error) {
	if connection.Broker == "" {
		return nil, fmt.Errorf("kafka broker is required")
	}
	configMap := kafkaConfig(connection)
	p, err := kafka.NewProducer(&configMap)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &KafkaQueue{
		Name:         connection.Topic,
		Producer:     p,
		DeliveryChan: make(chan kafka.Event, 1),
	}, nil
}

func (q *KafkaQueue) SendMessage(queueName string, payload string, delay int) error {
	if queueName == "" {
		queueName = q.Name
	}
	err := q.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &queueName, Partition: kafka.PartitionAny},
		Value:          []byte(payload),
	}, q.DeliveryChan)
	if err != nil {
		return fmt.Errorf("kafka produce to %s: %w", queueName, err)
	}
	e := <-q.DeliveryChan // wait
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		return fmt.Errorf("kafka delivery to %s: %w", queueName, m.TopicPartition.Error)
	}
	return nil
}

// Test checks that the topic exists on the cluster.
func (q *KafkaQueue) Test(queueName string) error {
	if queueName == "" {
		queueName = q.Name
	}
	a, err := kafka.NewAdminClientFromProducer(q.Producer)
	if err != nil {
		return err
	}
	defer a.Close()

	md, err := a.GetMetadata(&queueName, false, int(testTimeout/time.Millisecond))
	if err != nil {
		return err
	}
	if _, ok := md.Topics[queueName]; !ok {
		return fmt.Errorf("kafka topic %s not found", queueName)
	}
	return nil
}

func (q *KafkaQueue) Close() {
	q.Producer.Flush(int(testTimeout / time.Millisecond))
	q.Producer.Close()
}
