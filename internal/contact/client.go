// Package contact forwards contact-form submissions to the external
// contact API. Submissions are relayed only; nothing is stored locally.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"writoria/internal/models"
	"writoria/internal/observability"
)

const requestTimeout = 10 * time.Second

// Submission is the payload relayed upstream.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Client posts submissions to the configured contact API endpoint.
type Client struct {
	url    string
	client *http.Client
}

// NewClient returns a relay client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type upstreamReply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit relays the submission. The upstream signals acceptance with 201;
// any other status is an upstream error, and a transport failure means the
// service is unreachable.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return models.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		observability.ContactRelayRequests.WithLabelValues("unreachable").Inc()
		return models.NewServiceUnavailableError("Could not connect to the server. Please try again later.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		observability.ContactRelayRequests.WithLabelValues("error").Inc()
		var reply upstreamReply
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		_ = json.Unmarshal(raw, &reply)
		msg := reply.Message
		if msg == "" {
			msg = reply.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return models.NewUpstreamError("Contact service rejected the submission", fmt.Errorf("%s", msg))
	}

	observability.ContactRelayRequests.WithLabelValues("success").Inc()
	return nil
}
