package ai

import (
	"fmt"
	"strings"

	"github.com/aretacare/aretacare/pkg/types"
)

// PROMPT_JOURNAL_SYNTHESIS 日记合成的系统提示词
const PROMPT_JOURNAL_SYNTHESIS = `You are creating journal entries for a caregiver's daily diary. For EVERY conversation, create at least one journal entry capturing what was discussed.

Entry types to use:
- MEDICAL_UPDATE: Any medical information, test results, symptoms, conditions
- TREATMENT_CHANGE: Medication changes, new therapies, care plan adjustments
- APPOINTMENT: Upcoming or past medical appointments
- QUESTION: Important questions the caregiver needs answered
- INSIGHT: Observations, patterns, concerns about the journey
- MILESTONE: Significant moments in the care journey

CONTENT DETAIL GUIDELINES:
- For IMPORTANT topics (test results, new diagnoses, treatment changes): Write detailed entries with context and specifics
- For ROUTINE topics (general questions, simple updates): Write brief, concise entries (1-2 sentences)
- For SIGNIFICANT moments (milestones, major decisions): Write thoughtful entries capturing the emotional and practical aspects

IMPORTANT: Create entries for all substantive conversations. Only skip entries for pure greetings like "hi" or "thanks".`

const synthesisRequestTemplate = `Recent journal (last 7 days):
{recent_context}

Conversation:
User: {user_message}
Assistant: {assistant_reply}

Create a journal entry for this conversation. Set should_create to true unless this is just a greeting with no substance (like just "hi" or "thanks").

Choose the appropriate entry type (MEDICAL_UPDATE, TREATMENT_CHANGE, APPOINTMENT, QUESTION, INSIGHT, or MILESTONE).

Adjust detail level based on importance:
- Important topics (test results, new diagnoses, treatment changes) = detailed entry with context
- Routine topics (general questions, simple updates) = brief entry (1-2 sentences)
- Significant moments (milestones, major decisions) = thoughtful entry

IMPORTANT: Respond with ONLY a valid JSON object in this exact format, with no additional text before or after:
{
  "should_create": true or false,
  "reasoning": "brief explanation",
  "suggested_entries": [
    {
      "title": "entry title (max 100 chars)",
      "content": "entry content",
      "entry_type": "MEDICAL_UPDATE or TREATMENT_CHANGE or APPOINTMENT or QUESTION or INSIGHT or MILESTONE"
    }
  ]
}`

// BuildSynthesisMessages 组装日记合成的请求消息
func BuildSynthesisMessages(prompt, recentContext, userMessage, assistantReply string) []*types.MessageContext {
	if prompt == "" {
		prompt = PROMPT_JOURNAL_SYNTHESIS
	}

	request := strings.NewReplacer(
		"{recent_context}", recentContext,
		"{user_message}", userMessage,
		"{assistant_reply}", assistantReply,
	).Replace(synthesisRequestTemplate)

	return []*types.MessageContext{
		{
			Role:    types.USER_ROLE_SYSTEM,
			Content: prompt,
		},
		{
			Role:    types.USER_ROLE_USER,
			Content: request,
		},
	}
}

const emptyRecentJournal = "No recent journal entries."

// FormatRecentJournalBrief 渲染近 7 天条目的单行摘要，只含标题不含正文
func FormatRecentJournalBrief(entries []types.JournalEntry) string {
	if len(entries) == 0 {
		return emptyRecentJournal
	}

	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("- %s [%s]: %s", entry.EntryDate, entry.EntryType, entry.Title))
	}
	return b.String()
}
