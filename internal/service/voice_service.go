package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/pkg/speech"
)

type IVoiceService interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*dto.STTResponse, error)
	Synthesize(ctx context.Context, req *dto.TTSRequest) (*dto.TTSResponse, error)
	ListVoices() *dto.VoiceListResponse
}

type voiceService struct {
	provider speech.Provider
	logger   logger.ILogger
}

func NewVoiceService(provider speech.Provider, log logger.ILogger) IVoiceService {
	return &voiceService{provider: provider, logger: log}
}

func (s *voiceService) Transcribe(ctx context.Context, audio io.Reader, filename string) (*dto.STTResponse, error) {
	if filename == "" {
		filename = speech.DefaultFilename
	}
	text, err := s.provider.Transcribe(ctx, audio, filename)
	if err != nil {
		s.logger.Error("VOICE", "Transcription failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	return &dto.STTResponse{Text: text}, nil
}

func (s *voiceService) Synthesize(ctx context.Context, req *dto.TTSRequest) (*dto.TTSResponse, error) {
	voice := req.Voice
	if voice == "" {
		voice = speech.DefaultVoice
	}
	audio, err := s.provider.Synthesize(ctx, req.Text, voice)
	if err != nil {
		s.logger.Error("VOICE", "Speech synthesis failed", map[string]interface{}{
			"voice": voice,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	return &dto.TTSResponse{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Text:        req.Text,
	}, nil
}

func (s *voiceService) ListVoices() *dto.VoiceListResponse {
	voices := speech.Voices()
	res := &dto.VoiceListResponse{Voices: make([]dto.VoiceResponse, len(voices))}
	for i, v := range voices {
		res.Voices[i] = dto.VoiceResponse{VoiceId: v.VoiceId, Name: v.Name, Description: v.Description}
	}
	return res
}
