package speech

import (
	"context"
	"fmt"
	"io"

	goopenai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client             *goopenai.Client
	transcriptionModel string
	speechModel        string
}

var _ Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(apiKey, transcriptionModel, speechModel string) *OpenAIProvider {
	if transcriptionModel == "" {
		transcriptionModel = goopenai.Whisper1
	}
	if speechModel == "" {
		speechModel = string(goopenai.TTSModel1)
	}
	return &OpenAIProvider{
		client:             goopenai.NewClient(apiKey),
		transcriptionModel: transcriptionModel,
		speechModel:        speechModel,
	}
}

func (p *OpenAIProvider) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    p.transcriptionModel,
		FilePath: filename,
		Reader:   audio,
		Format:   goopenai.AudioResponseFormatJSON,
		Language: "en",
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = DefaultVoice
	}
	stream, err := p.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(p.speechModel),
		Input:          text,
		Voice:          goopenai.SpeechVoice(voice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read speech stream: %w", err)
	}
	return audio, nil
}
