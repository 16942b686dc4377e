package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthcare-chatbot-be/pkg/llm"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	return &GeminiProvider{client: client, ModelName: modelName}, nil
}

// toContents maps turns onto Gemini's two roles; anything not from the user is the model.
func toContents(turns []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		if m.Content == "" {
			continue
		}
		role := "user"
		if m.Role != llm.RoleUser {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)
	system, turns := llm.SplitSystem(history)

	temperature := float32(options.Temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, toContents(turns), cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
