package chat

import (
	"fmt"

	"writoria/internal/config"
)

// FromConfig selects and builds the configured backend.
func FromConfig(cfg *config.Config) (Backend, error) {
	switch cfg.ChatBackend {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("chat backend gemini requires GEMINI_API_KEY")
		}
		return NewGeminiBackend(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "ollama":
		return NewOllamaBackend(cfg.OllamaHost, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown chat backend %q", cfg.ChatBackend)
	}
}
