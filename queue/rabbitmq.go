package queue

import (
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	models "github.com/sabordos/cli/models"
)

// RabbitMQ struct
type RabbitMQ struct {
	// RabbitMQ connection
	conn *amqp.Connection
	// RabbitMQ channel for producing
	chP *amqp.Channel
	// RabbitMQ exchange
	exchange string
	// RabbitMQ queue name
	queueName string
	// RabbitMQ connection string
	connString string
}

// rabbitConnectionString adds the credentials to host, keeping an amqp:// or
// amqps:// scheme when one is given.
func rabbitConnectionString(host, username, password string) string {
	protocol := "amqp://"
	for _, p := range []string{"amqps://", "amqp://"} {
		if strings.HasPrefix(host, p) {
			protocol = p
			host = strings.TrimPrefix(host, p)
			break
		}
	}
	if host == "" {
		return ""
	}
	if username == "" {
		return protocol + host + "/"
	}
	return protocol + username + ":" + password + "@" + host + "/"
}

func CreateRabbitMQ(connection models.Queue) (*RabbitMQ, error) {
	r := &RabbitMQ{
		exchange:   connection.Exchange,
		queueName:  connection.Topic,
		connString: rabbitConnectionString(connection.Broker, connection.Username, connection.Password),
	}
	if r.connString == "" {
		return nil, errors.New("RabbitMQ broker is required")
	}
	if err := r.Connect(); err != nil {
		return r, errors.New("RabbitMQ connection error: " + err.Error())
	}
	return r, nil
}

// Connect to RabbitMQ
func (r *RabbitMQ) Connect() error {
	var err error
	r.conn, err = amqp.Dial(r.connString)
	if err != nil {
		return err
	}

	r.chP, err = r.conn.Channel()
	if err != nil {
		return err
	}

	// Declare queue, if it doesn't exist already.
	_, err = r.chP.QueueDeclare(
		r.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		amqp.Table{
			"x-queue-type": "quorum",
		}, // arguments
	)
	return err
}

func (r *RabbitMQ) SendMessage(queueName string, payload string, delay int) error {
	if queueName == "" {
		queueName = r.queueName
	}
	// With the nameless exchange the routing key is the queue name.
	err := r.chP.Publish(
		r.exchange,
		queueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        []byte(payload),
		})
	if err != nil {
		return fmt.Errorf("rabbitmq publish to %s: %w", queueName, err)
	}
	return nil
}

func (r *RabbitMQ) Test(queueName string) error {
	if r.conn == nil {
		if err := r.Connect(); err != nil {
			return err
		}
	}
	if r.conn.IsClosed() {
		return errors.New("Connection is closed")
	}
	return nil
}

func (r *RabbitMQ) Close() {
	if r.chP != nil {
		r.chP.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
