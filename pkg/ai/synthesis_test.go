package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretacare/aretacare/pkg/ai"
)

func TestStripCodeFence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "no fence",
			input:  `{"a":1}`,
			expect: `{"a":1}`,
		},
		{
			name:   "json tagged fence",
			input:  "```json\n{\"a\":1}\n```",
			expect: `{"a":1}`,
		},
		{
			name:   "bare fence",
			input:  "```\n{\"a\":1}\n```",
			expect: `{"a":1}`,
		},
		{
			name:   "fence without closing line",
			input:  "```json\n{\"a\":1}",
			expect: `{"a":1}`,
		},
		{
			name:   "surrounding whitespace",
			input:  "  \n```json\n{\"a\":1}\n```\n  ",
			expect: `{"a":1}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ai.StripCodeFence(tc.input))
		})
	}
}

func TestParseSynthesisResponse(t *testing.T) {
	raw := `{
		"should_create": true,
		"reasoning": "test results discussed",
		"suggested_entries": [
			{"title": "MRI results reviewed", "content": "Scan showed improvement.", "entry_type": "MEDICAL_UPDATE"}
		]
	}`

	parsed, err := ai.ParseSynthesisResponse(raw)
	require.NoError(t, err)
	assert.True(t, parsed.ShouldCreate)
	assert.Equal(t, "test results discussed", parsed.Reasoning)
	require.Len(t, parsed.SuggestedEntries, 1)
	assert.Equal(t, "MRI results reviewed", parsed.SuggestedEntries[0].Title)
	assert.Equal(t, "MEDICAL_UPDATE", parsed.SuggestedEntries[0].EntryType)
	assert.Equal(t, float64(ai.SYNTHESIS_CONFIDENCE), parsed.SuggestedEntries[0].Confidence)
}

func TestParseSynthesisResponseFenced(t *testing.T) {
	raw := "```json\n{\"should_create\": false, \"reasoning\": \"just a greeting\", \"suggested_entries\": []}\n```"

	parsed, err := ai.ParseSynthesisResponse(raw)
	require.NoError(t, err)
	assert.False(t, parsed.ShouldCreate)
	assert.Equal(t, "just a greeting", parsed.Reasoning)
	assert.Empty(t, parsed.SuggestedEntries)
}

func TestParseSynthesisResponseFailures(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "plain prose",
			input: "Sure! I think we should create a journal entry about the MRI results.",
		},
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "missing should_create",
			input: `{"reasoning": "x", "suggested_entries": []}`,
		},
		{
			name:  "missing reasoning",
			input: `{"should_create": true, "suggested_entries": []}`,
		},
		{
			name:  "entry missing title",
			input: `{"should_create": true, "reasoning": "x", "suggested_entries": [{"content": "c", "entry_type": "INSIGHT"}]}`,
		},
		{
			name:  "entry missing content",
			input: `{"should_create": true, "reasoning": "x", "suggested_entries": [{"title": "t", "entry_type": "INSIGHT"}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ai.ParseSynthesisResponse(tc.input)
			require.Error(t, err)

			var parseErr *ai.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseSynthesisResponseClipsTitle(t *testing.T) {
	longTitle := strings.Repeat("a", 140)
	raw := `{"should_create": true, "reasoning": "x", "suggested_entries": [{"title": "` + longTitle + `", "content": "c", "entry_type": "INSIGHT"}]}`

	parsed, err := ai.ParseSynthesisResponse(raw)
	require.NoError(t, err)
	require.Len(t, parsed.SuggestedEntries, 1)
	assert.Len(t, []rune(parsed.SuggestedEntries[0].Title), 100)
}
