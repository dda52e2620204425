package v1_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/aretacare/aretacare/app/logic/v1"
	"github.com/aretacare/aretacare/pkg/types"
)

var contextToday = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func entryOn(date, title, content string) types.JournalEntry {
	return types.JournalEntry{
		EntryDate: date,
		EntryType: types.ENTRY_TYPE_MEDICAL_UPDATE,
		Title:     title,
		Content:   content,
	}
}

func daysAgo(n int) string {
	return contextToday.AddDate(0, 0, -n).Format(types.DATE_LAYOUT)
}

func TestRenderJournalContextEmpty(t *testing.T) {
	assert.Equal(t, "# Care Journal\n\nNo journal entries yet.", v1.RenderJournalContext(nil, contextToday, 40000))
	assert.Equal(t, "# Care Journal\n\nNo journal entries yet.", v1.RenderJournalContext([]types.JournalEntry{}, contextToday, 40000))
}

func TestRenderJournalContextTierBoundaries(t *testing.T) {
	entries := []types.JournalEntry{
		entryOn(daysAgo(7), "seven days old", "full recent content"),
		entryOn(daysAgo(8), "eight days old", strings.Repeat("m", 160)),
		entryOn(daysAgo(30), "thirty days old", "short mid content"),
		entryOn(daysAgo(31), "thirty one days old", "hidden content"),
	}

	out := v1.RenderJournalContext(entries, contextToday, 40000)

	assert.Contains(t, out, "## Recent Entries (Last 7 Days)")
	assert.Contains(t, out, "full recent content")

	assert.Contains(t, out, "## Previous Entries (8-30 Days Ago)")
	assert.Contains(t, out, strings.Repeat("m", 150)+"...")
	assert.NotContains(t, out, strings.Repeat("m", 151))
	// 不超过 150 字符的正文不截断
	assert.Contains(t, out, "thirty days old: short mid content")

	assert.Contains(t, out, "## Earlier History (30+ Days Ago)")
	assert.Contains(t, out, "thirty one days old")
	assert.NotContains(t, out, "hidden content")
}

func TestRenderJournalContextThreeTiers(t *testing.T) {
	entries := []types.JournalEntry{
		entryOn(daysAgo(0), "entry today", "today full detail"),
		entryOn(daysAgo(10), "entry ten days", strings.Repeat("y", 200)),
		entryOn(daysAgo(40), "entry forty days", "never shown"),
	}

	out := v1.RenderJournalContext(entries, contextToday, 40000)

	require.True(t, strings.HasPrefix(out, "# Care Journal Context\n\n"))

	recentIdx := strings.Index(out, "## Recent Entries (Last 7 Days)")
	midIdx := strings.Index(out, "## Previous Entries (8-30 Days Ago)")
	earlierIdx := strings.Index(out, "## Earlier History (30+ Days Ago)")
	require.True(t, recentIdx >= 0 && midIdx > recentIdx && earlierIdx > midIdx)

	assert.Contains(t, out, "today full detail")
	assert.Contains(t, out, strings.Repeat("y", 150)+"...")
	assert.NotContains(t, out, "never shown")

	// 40 天前是上个月,按月份标题归组
	month := contextToday.AddDate(0, 0, -40).Format("January 2006")
	assert.Contains(t, out, "**"+month+"**: entry forty days")
}

func TestRenderJournalContextCeiling(t *testing.T) {
	entries := []types.JournalEntry{
		entryOn(daysAgo(1), "long entry", strings.Repeat("z", 5000)),
	}

	out := v1.RenderJournalContext(entries, contextToday, 400)

	assert.True(t, strings.HasSuffix(out, "\n\n[Context truncated]"))
	assert.Len(t, []rune(strings.TrimSuffix(out, "\n\n[Context truncated]")), 400)
}

func TestRenderJournalContextMonthGrouping(t *testing.T) {
	entries := []types.JournalEntry{
		entryOn("2026-06-20", "june twenty", ""),
		entryOn("2026-06-05", "june five", ""),
		entryOn("2026-05-12", "may twelve", ""),
	}

	out := v1.RenderJournalContext(entries, contextToday, 40000)

	assert.Contains(t, out, "**June 2026**: june twenty, june five")
	assert.Contains(t, out, "**May 2026**: may twelve")
}
