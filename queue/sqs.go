package queue

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	models "github.com/sabordos/cli/models"
)

type SQSQueue struct {
	Name       string
	Url        *string
	Connection *sqs.SQS
}

func CreateSQSQueue(connection models.Queue) (*SQSQueue, error) {
	cfg := &aws.Config{
		Region: aws.String(connection.Region),
	}
	// Without static keys the default credential chain is used.
	if connection.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(connection.AccessKey, connection.Secret, "")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	q := &SQSQueue{
		Name:       connection.Topic,
		Connection: sqs.New(sess),
	}
	q.Url, err = q.queueUrl(connection.Topic)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (q *SQSQueue) queueUrl(queueName string) (*string, error) {
	if queueName == q.Name && q.Url != nil {
		return q.Url, nil
	}
	url, err := q.Connection.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to find queue %q: %w", queueName, err)
	}
	return url.QueueUrl, nil
}

func (q *SQSQueue) Test(queueName string) error {
	_, err := q.queueUrl(queueName)
	return err
}

func (q *SQSQueue) SendMessage(queueName string, payload string, delay int) error {
	if queueName == "" {
		queueName = q.Name
	}
	url, err := q.queueUrl(queueName)
	if err != nil {
		return err
	}
	_, err = q.Connection.SendMessage(&sqs.SendMessageInput{
		MessageBody:  aws.String(payload),
		QueueUrl:     url,
		DelaySeconds: aws.Int64(int64(delay)),
	})
	if err != nil {
		return fmt.Errorf("sqs send to %s: %w", queueName, err)
	}
	return nil
}

func (q *SQSQueue) Close() {

}
