package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/pkg/speech"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceService_Transcribe(t *testing.T) {
	provider := &fakeSpeech{text: "I have a sore throat"}
	svc := NewVoiceService(provider, logger.NewNop())

	res, err := svc.Transcribe(context.Background(), strings.NewReader("RIFF"), "")
	require.NoError(t, err)
	assert.Equal(t, "I have a sore throat", res.Text)
	assert.Equal(t, speech.DefaultFilename, provider.lastFile)

	_, err = svc.Transcribe(context.Background(), strings.NewReader("RIFF"), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "clip.wav", provider.lastFile)
}

func TestVoiceService_Transcribe_Failure(t *testing.T) {
	svc := NewVoiceService(&fakeSpeech{err: errors.New("unsupported format")}, logger.NewNop())

	_, err := svc.Transcribe(context.Background(), strings.NewReader(""), "clip.ogg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscriptionFailed)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestVoiceService_Synthesize(t *testing.T) {
	provider := &fakeSpeech{audio: []byte("ID3-mp3-bytes")}
	svc := NewVoiceService(provider, logger.NewNop())

	res, err := svc.Synthesize(context.Background(), &dto.TTSRequest{Text: "Stay hydrated"})
	require.NoError(t, err)
	assert.Equal(t, speech.DefaultVoice, provider.lastVoice)
	assert.Equal(t, "Stay hydrated", res.Text)

	decoded, err := base64.StdEncoding.DecodeString(res.AudioBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-mp3-bytes"), decoded)

	_, err = svc.Synthesize(context.Background(), &dto.TTSRequest{Text: "hi", Voice: "onyx"})
	require.NoError(t, err)
	assert.Equal(t, "onyx", provider.lastVoice)
}

func TestVoiceService_Synthesize_Failure(t *testing.T) {
	svc := NewVoiceService(&fakeSpeech{err: errors.New("quota exceeded")}, logger.NewNop())

	_, err := svc.Synthesize(context.Background(), &dto.TTSRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrSynthesisFailed)
}

func TestVoiceService_ListVoices(t *testing.T) {
	svc := NewVoiceService(&fakeSpeech{}, logger.NewNop())

	res := svc.ListVoices()
	require.Len(t, res.Voices, len(speech.Voices()))
	ids := make([]string, len(res.Voices))
	for i, v := range res.Voices {
		ids[i] = v.VoiceId
	}
	assert.Contains(t, ids, speech.DefaultVoice)
}
