package types

import (
	"encoding/json"
	"strings"

	"github.com/lib/pq"
)

// EntryType 日记条目类型，闭集
type EntryType string

const (
	ENTRY_TYPE_MEDICAL_UPDATE   = EntryType("MEDICAL_UPDATE")
	ENTRY_TYPE_TREATMENT_CHANGE = EntryType("TREATMENT_CHANGE")
	ENTRY_TYPE_APPOINTMENT      = EntryType("APPOINTMENT")
	ENTRY_TYPE_QUESTION         = EntryType("QUESTION")
	ENTRY_TYPE_INSIGHT          = EntryType("INSIGHT")
	ENTRY_TYPE_MILESTONE        = EntryType("MILESTONE")
)

var entryTypes = map[EntryType]bool{
	ENTRY_TYPE_MEDICAL_UPDATE:   true,
	ENTRY_TYPE_TREATMENT_CHANGE: true,
	ENTRY_TYPE_APPOINTMENT:      true,
	ENTRY_TYPE_QUESTION:         true,
	ENTRY_TYPE_INSIGHT:          true,
	ENTRY_TYPE_MILESTONE:        true,
}

func (t EntryType) Valid() bool {
	return entryTypes[t]
}

func (t EntryType) String() string {
	return string(t)
}

// ParseEntryType 将分类器返回的自由文本归一到闭集，未知值回退为 INSIGHT
func ParseEntryType(raw string) EntryType {
	t := EntryType(strings.ToUpper(strings.TrimSpace(raw)))
	if t.Valid() {
		return t
	}
	return ENTRY_TYPE_INSIGHT
}

const (
	// JOURNAL_CREATED_BY_AI 自动合成条目的 created_by 标记
	JOURNAL_CREATED_BY_AI = "ai"

	// JOURNAL_TITLE_MAX_LENGTH 条目标题长度上限
	JOURNAL_TITLE_MAX_LENGTH = 100

	// DATE_LAYOUT 日记日期格式
	DATE_LAYOUT = "2006-01-02"
)

type JournalEntry struct {
	ID               int64           `json:"id" db:"id"`
	SessionID        string          `json:"session_id" db:"session_id"`
	EntryDate        string          `json:"entry_date" db:"entry_date"`
	EntryType        EntryType       `json:"entry_type" db:"entry_type"`
	Title            string          `json:"title" db:"title"`
	Content          string          `json:"content" db:"content"`
	CreatedBy        string          `json:"created_by" db:"created_by"`
	CreatedAt        int64           `json:"created_at" db:"created_at"`
	UpdatedAt        int64           `json:"updated_at" db:"updated_at"`
	SourceMessageIDs pq.Int64Array   `json:"source_message_ids" db:"source_message_ids"`
	Metadata         json.RawMessage `json:"metadata" db:"metadata"`
}

type CreateJournalEntryArgs struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	EntryType EntryType       `json:"entry_type"`
	EntryDate string          `json:"entry_date"`
	Metadata  json.RawMessage `json:"metadata"`
}

// UpdateJournalEntryArgs 部分更新，nil 表示该字段不变
type UpdateJournalEntryArgs struct {
	Title     *string    `json:"title"`
	Content   *string    `json:"content"`
	EntryType *EntryType `json:"entry_type"`
	EntryDate *string    `json:"entry_date"`
}

type ListJournalEntryOptions struct {
	SessionID string
	StartDate string
	EndDate   string
}

// SynthesisResult 一次 assess_and_synthesize 调用的完整结果
type SynthesisResult struct {
	ShouldCreate   bool           `json:"should_create"`
	Reasoning      string         `json:"reasoning"`
	CreatedEntries []JournalEntry `json:"created_entries"`
}
