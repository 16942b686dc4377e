package factory

import (
	"context"
	"fmt"

	"healthcare-chatbot-be/pkg/llm"
	"healthcare-chatbot-be/pkg/llm/gemini"
	"healthcare-chatbot-be/pkg/llm/ollama"
	"healthcare-chatbot-be/pkg/llm/openai"
)

type Config struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	OpenAIKey     string
	GeminiKey     string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
