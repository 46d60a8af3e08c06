// internal/infrastructure/invoke/client.go
package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// eventEnvelope wraps asynchronous payloads the way the receiving functions expect them
type eventEnvelope struct {
	Body any `json:"body"`
}

// requestEnvelope wraps request/response payloads as path parameters
type requestEnvelope struct {
	PathParameters any `json:"pathParameters"`
}

// Client invokes remote functions. Events are appended to a Redis stream per target;
// synchronous calls are posted to an HTTP gateway.
type Client struct {
	rdb          *redis.Client
	streamPrefix string
	baseURL      string
	httpClient   *http.Client
}

// NewClient creates an invoker. An empty baseURL disables synchronous calls.
func NewClient(rdb *redis.Client, streamPrefix, baseURL string, timeout time.Duration) *Client {
	return &Client{
		rdb:          rdb,
		streamPrefix: streamPrefix,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// StreamName returns the stream events for target are appended to
func (c *Client) StreamName(target string) string {
	return fmt.Sprintf("%s:%s", c.streamPrefix, target)
}

// InvokeEvent appends the payload to the target's stream without waiting for a consumer
func (c *Client) InvokeEvent(ctx context.Context, target string, payload any) error {
	data, err := json.Marshal(eventEnvelope{Body: payload})
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", target, err)
	}

	err = c.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.StreamName(target),
		Values: map[string]interface{}{"payload": string(data)},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", target, err)
	}

	return nil
}

// Invoke calls target and returns its response body. A 404 or an empty body yields nil.
func (c *Client) Invoke(ctx context.Context, target string, payload any) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("cannot invoke %s: no gateway configured", target)
	}

	data, err := json.Marshal(requestEnvelope{PathParameters: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request for %s: %w", target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("invoke %s returned status %d", target, resp.StatusCode)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	return body, nil
}
