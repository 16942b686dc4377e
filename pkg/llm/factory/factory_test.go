package factory

import (
	"context"
	"testing"

	"healthcare-chatbot-be/pkg/llm/ollama"
	"healthcare-chatbot-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("openai", func(t *testing.T) {
		p, err := NewLLMProvider(ctx, Config{Provider: "openai", OpenAIKey: "sk-test", Model: "gpt-4o-mini"})
		require.NoError(t, err)
		op, ok := p.(*openai.OpenAIProvider)
		require.True(t, ok)
		assert.Equal(t, "gpt-4o-mini", op.ModelName)
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("gemini without key", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: "gemini"})
		assert.Error(t, err)
	})

	t.Run("ollama default url", func(t *testing.T) {
		p, err := NewLLMProvider(ctx, Config{Provider: "ollama", Model: "llama3"})
		require.NoError(t, err)
		op, ok := p.(*ollama.OllamaProvider)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434", op.BaseURL)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: "bard"})
		assert.EqualError(t, err, "unsupported LLM provider: bard")
	})
}
