package v1

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretacare/aretacare/pkg/safe"
	"github.com/aretacare/aretacare/pkg/types"
)

const (
	EMPTY_JOURNAL_MARKER     = "# Care Journal\n\nNo journal entries yet."
	JOURNAL_CONTEXT_FALLBACK = "# Care Journal\n\nUnable to load journal context."

	// 粗略估算,一个 token 约等于 4 个字符
	CHARS_PER_TOKEN = 4

	contentSummaryLimit = 150
)

// FormatContext 渲染整个会话的日记上下文,供对话侧拼接进 prompt。
// 该方法永远不返回错误,任何内部故障都降级为 fallback 文案。
func (l *JournalLogic) FormatContext(sessionID string, maxTokens int) string {
	if l.core.Metrics() != nil {
		timer := l.core.Metrics().JournalContextTimer()
		defer timer.ObserveDuration()
	}

	if maxTokens <= 0 {
		maxTokens = l.core.Cfg().Journal.MaxTokensOrDefault()
	}

	result := JOURNAL_CONTEXT_FALLBACK
	safe.RunWithLog(func() {
		entries, err := l.store.JournalEntryStore().List(l.ctx, types.ListJournalEntryOptions{
			SessionID: sessionID,
		})
		if err != nil && err != sql.ErrNoRows {
			slog.Error("failed to load journal entries for context", slog.String("session_id", sessionID), slog.String("error", err.Error()))
			return
		}

		result = RenderJournalContext(entries, time.Now(), maxTokens*CHARS_PER_TOKEN)
	}, "JournalLogic.FormatContext")
	return result
}

// RenderJournalContext 按条目年龄分三档渲染,越旧保真度越低:
// 7 天内全文,8-30 天正文截断,30 天以上按月只列标题。
// entries 需按 entry_date 倒序传入。
func RenderJournalContext(entries []types.JournalEntry, today time.Time, maxChars int) string {
	if len(entries) == 0 {
		return EMPTY_JOURNAL_MARKER
	}

	var (
		fullDetail []types.JournalEntry
		summarized []types.JournalEntry
		titlesOnly []types.JournalEntry
	)

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, entry := range entries {
		entryDate, err := time.ParseInLocation(types.DATE_LAYOUT, entry.EntryDate, time.UTC)
		if err != nil {
			continue
		}
		daysOld := int(todayDate.Sub(entryDate).Hours() / 24)

		switch {
		case daysOld <= 7:
			fullDetail = append(fullDetail, entry)
		case daysOld <= 30:
			summarized = append(summarized, entry)
		default:
			titlesOnly = append(titlesOnly, entry)
		}
	}

	var b strings.Builder
	b.WriteString("# Care Journal Context\n\n")

	if len(fullDetail) > 0 {
		b.WriteString("## Recent Entries (Last 7 Days)\n\n")
		for _, e := range fullDetail {
			fmt.Fprintf(&b, "**%s** [%s] **%s**\n%s\n\n", e.EntryDate, e.EntryType, e.Title, e.Content)
		}
	}

	if len(summarized) > 0 {
		b.WriteString("## Previous Entries (8-30 Days Ago)\n\n")
		for _, e := range summarized {
			summary := e.Content
			if runes := []rune(summary); len(runes) > contentSummaryLimit {
				summary = string(runes[:contentSummaryLimit]) + "..."
			}
			fmt.Fprintf(&b, "**%s** %s: %s\n\n", e.EntryDate, e.Title, summary)
		}
	}

	if len(titlesOnly) > 0 {
		b.WriteString("## Earlier History (30+ Days Ago)\n\n")
		months, grouped := groupEntriesByMonth(titlesOnly)
		for _, month := range months {
			titles := make([]string, 0, len(grouped[month]))
			for _, e := range grouped[month] {
				titles = append(titles, e.Title)
			}
			fmt.Fprintf(&b, "**%s**: %s\n\n", month, strings.Join(titles, ", "))
		}
	}

	context := b.String()
	if runes := []rune(context); len(runes) > maxChars {
		context = string(runes[:maxChars]) + "\n\n[Context truncated]"
	}
	return context
}

// groupEntriesByMonth 保持条目出现顺序,月份按首次出现排序
func groupEntriesByMonth(entries []types.JournalEntry) ([]string, map[string][]types.JournalEntry) {
	var months []string
	grouped := make(map[string][]types.JournalEntry)
	for _, entry := range entries {
		entryDate, err := time.ParseInLocation(types.DATE_LAYOUT, entry.EntryDate, time.UTC)
		if err != nil {
			continue
		}
		month := entryDate.Format("January 2006")
		if _, ok := grouped[month]; !ok {
			months = append(months, month)
		}
		grouped[month] = append(grouped[month], entry)
	}
	return months, grouped
}
