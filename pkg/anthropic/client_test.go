package anthropic

import (
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
)

func TestEstimateCost_KnownModel(t *testing.T) {
	u := TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	// sonnet: $3/MTok in + $15/MTok out
	assert.InDelta(t, 18.0, u.EstimateCost("claude-sonnet-4-5-20250929"), 0.001)
}

func TestEstimateCost_UnknownModel(t *testing.T) {
	u := TokenUsage{InputTokens: 500, OutputTokens: 500}
	assert.Equal(t, 0.0, u.EstimateCost("some-future-model"))
}

func TestEstimateCost_ZeroUsage(t *testing.T) {
	assert.Equal(t, 0.0, TokenUsage{}.EstimateCost("claude-haiku-4-5-20251001"))
}

func TestToSDKMessages_Roles(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "other", Content: "fallback"},
	})

	assert.Len(t, msgs, 3)
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, sdk.MessageParamRoleAssistant, msgs[1].Role)
	// Unknown roles default to user.
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[2].Role)
}

func TestFromSDKMessage_CollectsTextBlocks(t *testing.T) {
	msg := &sdk.Message{
		ID:    "msg_1",
		Model: "claude-sonnet-4-5-20250929",
		Content: []sdk.ContentBlockUnion{
			{Type: "text", Text: "part one"},
			{Type: "text", Text: "part two"},
		},
	}
	msg.Usage.InputTokens = 12
	msg.Usage.OutputTokens = 34

	resp := fromSDKMessage(msg)

	assert.Equal(t, "msg_1", resp.ID)
	assert.Len(t, resp.Content, 2)
	assert.Equal(t, "part one", resp.Content[0].Text)
	assert.Equal(t, int64(12), resp.Usage.InputTokens)
	assert.Equal(t, int64(34), resp.Usage.OutputTokens)
}
