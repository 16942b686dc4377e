package speech

import (
	"context"
	"io"
)

const (
	DefaultVoice    = "nova"
	DefaultFilename = "audio.webm"
)

// Provider converts between audio and text.
type Provider interface {
	// Transcribe returns the text spoken in audio. filename carries the container hint (e.g. .webm).
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
	// Synthesize returns MP3 bytes of text spoken with voice.
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
