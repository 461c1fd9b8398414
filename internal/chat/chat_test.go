package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"writoria/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePageContext(t *testing.T) {
	assert.Empty(t, framePageContext(""))
	assert.Empty(t, framePageContext("   \n"))

	framed := framePageContext("How to bake bread")
	assert.Contains(t, framed, pageContextOpen)
	assert.Contains(t, framed, pageContextClose)
	assert.Contains(t, framed, "How to bake bread")
	assert.Contains(t, framed, "reference material only")
}

func TestFramePageContext_Truncates(t *testing.T) {
	long := strings.Repeat("a", maxPageContext+500)
	framed := framePageContext(long)
	assert.Less(t, len(framed), maxPageContext+300)
	assert.True(t, strings.HasSuffix(framed, pageContextClose))
}

func TestOllamaBackend_Respond(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaResponse{
			Message: ollamaMessage{Role: "assistant", Content: "Hi, I'm Rick ✍️"},
		})
	}))
	defer srv.Close()

	backend := NewOllamaBackend(srv.URL, "llama3:8b")
	reply, err := backend.Respond(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "Hi, I'm Rick ✍️", reply)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Rick")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Hello", got.Messages[1].Content)
	assert.False(t, got.Stream)
	assert.Equal(t, "llama3:8b", got.Model)
}

func TestOllamaBackend_PageContextAsExtraSystemMessage(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaResponse{Message: ollamaMessage{Content: "ok"}})
	}))
	defer srv.Close()

	backend := NewOllamaBackend(srv.URL, "llama3:8b")
	_, err := backend.Respond(context.Background(), "Summarize this", "Post body here")
	require.NoError(t, err)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, "system", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, pageContextOpen)
	assert.Contains(t, got.Messages[1].Content, "Post body here")
	// Untrusted page text never lands in the persona instruction.
	assert.NotContains(t, got.Messages[0].Content, "Post body here")
}

func TestOllamaBackend_RetriesOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Message: ollamaMessage{Content: "second try"}})
	}))
	defer srv.Close()

	backend := NewOllamaBackend(srv.URL, "llama3:8b")
	reply, err := backend.Respond(context.Background(), "Hello", "")
	require.NoError(t, err)
	assert.Equal(t, "second try", reply)
	assert.Equal(t, 2, calls)
}

func TestOllamaBackend_GivesUpAfterSecondFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	backend := NewOllamaBackend(srv.URL, "llama3:8b")
	_, err := backend.Respond(context.Background(), "Hello", "")
	require.Error(t, err)
	assert.Equal(t, 2, calls)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
}

func TestOllamaBackend_EmptyReplyIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{})
	}))
	defer srv.Close()

	backend := NewOllamaBackend(srv.URL, "llama3:8b")
	_, err := backend.Respond(context.Background(), "Hello", "")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
}

func TestGeminiBackend_Respond(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: "Sure thing! - Rick ✍️"}}}},
			},
		})
	}))
	defer srv.Close()

	backend := NewGeminiBackend("test-key", "gemini-pro").WithBaseURL(srv.URL)
	reply, err := backend.Respond(context.Background(), "Give me a post idea", "travel page")
	require.NoError(t, err)
	assert.Equal(t, "Sure thing! - Rick ✍️", reply)

	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "Rick")
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Contains(t, got.Contents[0].Parts[0].Text, pageContextOpen)
	assert.Equal(t, "Give me a post idea", got.Contents[0].Parts[1].Text)
}

func TestGeminiBackend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	backend := NewGeminiBackend("bad-key", "gemini-pro").WithBaseURL(srv.URL)
	_, err := backend.Respond(context.Background(), "Hello", "")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Contains(t, appErr.Err.Error(), "API key not valid")
}
