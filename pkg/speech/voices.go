package speech

type Voice struct {
	VoiceId     string
	Name        string
	Description string
}

var voices = []Voice{
	{VoiceId: "nova", Name: "Nova", Description: "Energetic, upbeat - great for healthcare guidance"},
	{VoiceId: "alloy", Name: "Alloy", Description: "Neutral, balanced tone"},
	{VoiceId: "echo", Name: "Echo", Description: "Smooth, calm - soothing for patients"},
	{VoiceId: "fable", Name: "Fable", Description: "Expressive, storytelling style"},
	{VoiceId: "onyx", Name: "Onyx", Description: "Deep, authoritative"},
	{VoiceId: "shimmer", Name: "Shimmer", Description: "Bright, cheerful"},
	{VoiceId: "ash", Name: "Ash", Description: "Clear, articulate"},
	{VoiceId: "coral", Name: "Coral", Description: "Warm, friendly"},
	{VoiceId: "sage", Name: "Sage", Description: "Wise, measured - professional tone"},
}

// Voices lists the selectable voices, recommended one first.
func Voices() []Voice {
	out := make([]Voice, len(voices))
	copy(out, voices)
	return out
}
