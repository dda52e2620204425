package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretacare/aretacare/pkg/ai"
	"github.com/aretacare/aretacare/pkg/types"
)

func TestFormatRecentJournalBrief(t *testing.T) {
	assert.Equal(t, "No recent journal entries.", ai.FormatRecentJournalBrief(nil))

	entries := []types.JournalEntry{
		{
			EntryDate: "2026-08-29",
			EntryType: types.ENTRY_TYPE_MEDICAL_UPDATE,
			Title:     "MRI results reviewed",
			Content:   "full content should not appear",
		},
		{
			EntryDate: "2026-08-27",
			EntryType: types.ENTRY_TYPE_QUESTION,
			Title:     "Ask about dosage timing",
		},
	}

	brief := ai.FormatRecentJournalBrief(entries)
	assert.Equal(t, "- 2026-08-29 [MEDICAL_UPDATE]: MRI results reviewed\n- 2026-08-27 [QUESTION]: Ask about dosage timing", brief)
	assert.NotContains(t, brief, "full content should not appear")
}

func TestBuildSynthesisMessages(t *testing.T) {
	messages := ai.BuildSynthesisMessages("", "No recent journal entries.", "how did the scan go?", "The scan showed improvement.")
	require.Len(t, messages, 2)

	assert.Equal(t, types.USER_ROLE_SYSTEM, messages[0].Role)
	assert.Equal(t, ai.PROMPT_JOURNAL_SYNTHESIS, messages[0].Content)

	assert.Equal(t, types.USER_ROLE_USER, messages[1].Role)
	assert.Contains(t, messages[1].Content, "Recent journal (last 7 days):\nNo recent journal entries.")
	assert.Contains(t, messages[1].Content, "User: how did the scan go?")
	assert.Contains(t, messages[1].Content, "Assistant: The scan showed improvement.")
	assert.NotContains(t, messages[1].Content, "{recent_context}")
	assert.NotContains(t, messages[1].Content, "{user_message}")
	assert.NotContains(t, messages[1].Content, "{assistant_reply}")
}

func TestBuildSynthesisMessagesCustomPrompt(t *testing.T) {
	messages := ai.BuildSynthesisMessages("custom system prompt", "brief", "u", "a")
	require.Len(t, messages, 2)
	assert.Equal(t, "custom system prompt", messages[0].Content)
}
