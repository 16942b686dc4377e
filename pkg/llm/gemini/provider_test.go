package gemini

import (
	"testing"

	"healthcare-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToContents(t *testing.T) {
	contents := toContents([]llm.Message{
		{Role: llm.RoleUser, Content: "I have a cough"},
		{Role: llm.RoleAssistant, Content: "How long?"},
		{Role: llm.RoleUser, Content: ""},
		{Role: llm.RoleUser, Content: "Two days"},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "Two days", contents[2].Parts[0].Text)
}
