package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretacare/aretacare/pkg/ai"
)

func TestDriverReportsPromptTokens(t *testing.T) {
	var got []int
	d := New("test-token", "", ai.ModelName{ChatModel: "gpt-4o-mini"}).
		WithUsageObserver(func(tokens int) {
			got = append(got, tokens)
		})

	d.reportPromptTokens(128)
	d.reportPromptTokens(64)
	assert.Equal(t, []int{128, 64}, got)
}

func TestDriverWithoutObserver(t *testing.T) {
	d := New("test-token", "", ai.ModelName{})

	assert.NotPanics(t, func() {
		d.reportPromptTokens(64)
	})
	assert.Equal(t, "gpt-4o-mini", d.Model())
}
