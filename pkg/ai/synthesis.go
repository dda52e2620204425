package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SYNTHESIS_CONFIDENCE 自动合成条目的固定置信度，当前不参与过滤
const SYNTHESIS_CONFIDENCE = 1.0

type SynthesisSuggestion struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	EntryType  string  `json:"entry_type"`
	Confidence float64 `json:"confidence"`
}

// ParsedSynthesis 分类器应答解析成功后的闭合结构
type ParsedSynthesis struct {
	ShouldCreate     bool                  `json:"should_create"`
	Reasoning        string                `json:"reasoning"`
	SuggestedEntries []SynthesisSuggestion `json:"suggested_entries"`
}

// ParseError 标记分类器输出不可解析，调用方据此走软失败分支
type ParseError struct {
	Reason string
	cause  error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("synthesis response %s: %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("synthesis response %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

type rawSynthesis struct {
	ShouldCreate     *bool           `json:"should_create"`
	Reasoning        *string         `json:"reasoning"`
	SuggestedEntries []rawSuggestion `json:"suggested_entries"`
}

type rawSuggestion struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	EntryType string `json:"entry_type"`
}

// ParseSynthesisResponse 防御性地解析模型输出。
// 模型可能用 markdown 代码块包裹 JSON，先剥掉围栏再解析；
// 缺少必填字段同样视为解析失败。
func ParseSynthesisResponse(text string) (ParsedSynthesis, error) {
	var result ParsedSynthesis

	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return result, &ParseError{Reason: "empty"}
	}

	var raw rawSynthesis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return result, &ParseError{Reason: "not valid json", cause: err}
	}

	if raw.ShouldCreate == nil || raw.Reasoning == nil {
		return result, &ParseError{Reason: "missing required fields"}
	}

	result.ShouldCreate = *raw.ShouldCreate
	result.Reasoning = *raw.Reasoning

	for _, entry := range raw.SuggestedEntries {
		if entry.Title == "" || entry.Content == "" || entry.EntryType == "" {
			return ParsedSynthesis{}, &ParseError{Reason: "suggested entry missing required fields"}
		}
		result.SuggestedEntries = append(result.SuggestedEntries, SynthesisSuggestion{
			Title:      clipRunes(entry.Title, 100),
			Content:    entry.Content,
			EntryType:  entry.EntryType,
			Confidence: SYNTHESIS_CONFIDENCE,
		})
	}

	return result, nil
}

// StripCodeFence 去掉 ```json ... ``` 形式的包裹
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	lines := strings.Split(cleaned, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func clipRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
