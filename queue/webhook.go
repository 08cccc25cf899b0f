package queue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	models "github.com/sabordos/cli/models"
)

const WebhookKeyHeader = "X-Seed-Key"

// WebhookQueue posts every message as {"message": <payload>} to Url.
type WebhookQueue struct {
	Url    string
	Key    string
	client *http.Client
}

func CreateWebhookQueue(connection models.Queue) (*WebhookQueue, error) {
	if connection.Url == "" {
		return nil, errors.New("webhook url is required")
	}
	return &WebhookQueue{
		Url:    strings.TrimRight(connection.Url, "/"),
		Key:    connection.CloudKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (q *WebhookQueue) post(url string, payload string) error {
	var jsonStr = []byte(`{"message": ` + payload + `}`)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonStr))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.Key != "" {
		req.Header.Set(WebhookKeyHeader, q.Key)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending to %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status from %s (%d): %s", url, resp.StatusCode, string(body))
	}
	return nil
}

// SendMessage ignores delay, webhooks are delivered right away.
func (q *WebhookQueue) SendMessage(queueName string, payload string, delay int) error {
	return q.post(q.Url+"/queue", payload)
}

func (q *WebhookQueue) Test(queueName string) error {
	payload, err := NewPayload(models.SeedEvent{Mode: "test"}).Marshal()
	if err != nil {
		return err
	}
	return q.post(q.Url+"/queue/test", payload)
}

func (q *WebhookQueue) Close() {

}
