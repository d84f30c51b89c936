// Package push provides an HTTP webhook client for delivering reminders to
// a device's registered push endpoint.
//
// A device registers an endpoint URL; delivery is an HTTP POST of the
// notification payload to it. Only a 2xx response counts as the positive
// acknowledgment the delivery ledger requires.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client represents a push client used to send notifications.
type Client struct {
	authToken string       // optional bearer token attached to every push
	client    *http.Client // HTTP client used to make requests
}

// NewClient creates a new push Client instance.
func NewClient(authToken string) *Client {
	return &Client{
		authToken: authToken,
		client:    &http.Client{},
	}
}

// pushRequest represents the payload posted to a device endpoint.
type pushRequest struct {
	Title string `json:"title"` // notification title
	Body  string `json:"body"`  // notification body
}

// Send posts the notification to the device's endpoint URL.
//
// The context carries the per-attempt timeout; a timed-out or non-2xx
// response is an error the delivery manager treats as transient.
func (c *Client) Send(ctx context.Context, address, title, body string) error {
	payload, err := json.Marshal(pushRequest{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push endpoint error: %s", resp.Status)
	}

	return nil
}
