package dto

type TTSRequest struct {
	Text  string `json:"text" validate:"required"`
	Voice string `json:"voice,omitempty"`
}

type TTSResponse struct {
	AudioBase64 string `json:"audio_base64"`
	Text        string `json:"text"`
}

type STTResponse struct {
	Text string `json:"text"`
}

type VoiceResponse struct {
	VoiceId     string `json:"voice_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type VoiceListResponse struct {
	Voices []VoiceResponse `json:"voices"`
}
