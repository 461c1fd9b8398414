package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"writoria/internal/models"
	"writoria/internal/observability"
)

// OllamaBackend talks to a local Ollama daemon over its /api/chat endpoint.
type OllamaBackend struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaBackend returns a backend for the daemon at host
// (e.g. "http://localhost:11434") running model (e.g. "llama3:8b").
func NewOllamaBackend(host, model string) *OllamaBackend {
	return &OllamaBackend{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (o *OllamaBackend) Name() string { return "ollama" }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error"`
}

func (o *OllamaBackend) Respond(ctx context.Context, message, pageContext string) (string, error) {
	messages := []ollamaMessage{{Role: "system", Content: SystemPrompt}}
	if framed := framePageContext(pageContext); framed != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: framed})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: message})

	body, err := json.Marshal(ollamaRequest{Model: o.model, Messages: messages, Stream: false})
	if err != nil {
		return "", models.NewInternalError(err)
	}

	resp, err := doWithRetry(ctx, o.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "error").Inc()
		return "", models.NewUpstreamError("Assistant backend unavailable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "error").Inc()
		return "", models.NewUpstreamError("Assistant backend unavailable", err)
	}

	var out ollamaResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "error").Inc()
		return "", models.NewUpstreamError("Invalid response from language model", err)
	}
	if resp.StatusCode != http.StatusOK {
		observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "error").Inc()
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return "", models.NewUpstreamError("Assistant backend unavailable", fmt.Errorf("%s", msg))
	}
	if out.Message.Content == "" {
		observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "error").Inc()
		return "", models.NewUpstreamError("Invalid response from language model", nil)
	}

	observability.ChatUpstreamRequests.WithLabelValues(o.Name(), "success").Inc()
	return out.Message.Content, nil
}
