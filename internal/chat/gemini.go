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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiBackend talks to the hosted Gemini generateContent REST API.
type GeminiBackend struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiBackend returns a backend for the given API key and model
// (e.g. "gemini-pro").
func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	return &GeminiBackend{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (g *GeminiBackend) WithBaseURL(baseURL string) *GeminiBackend {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

func (g *GeminiBackend) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiBackend) Respond(ctx context.Context, message, pageContext string) (string, error) {
	parts := []geminiPart{}
	if framed := framePageContext(pageContext); framed != "" {
		parts = append(parts, geminiPart{Text: framed})
	}
	parts = append(parts, geminiPart{Text: message})

	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: SystemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	resp, err := doWithRetry(ctx, g.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "error").Inc()
		return "", models.NewUpstreamError("Assistant backend unavailable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "error").Inc()
		return "", models.NewUpstreamError("Assistant backend unavailable", err)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "error").Inc()
		return "", models.NewUpstreamError("Invalid response from language model", err)
	}
	if resp.StatusCode != http.StatusOK {
		observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "error").Inc()
		msg := fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", models.NewUpstreamError("Assistant backend unavailable", fmt.Errorf("%s", msg))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "error").Inc()
		return "", models.NewUpstreamError("Invalid response from language model", nil)
	}

	var reply strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}
	observability.ChatUpstreamRequests.WithLabelValues(g.Name(), "success").Inc()
	return reply.String(), nil
}
