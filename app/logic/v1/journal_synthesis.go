package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/aretacare/aretacare/app/core"
	"github.com/aretacare/aretacare/pkg/ai"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/types"
)

const (
	SYNTHESIS_REASONING_PARSE_ERROR = "Error parsing AI response"
	SYNTHESIS_REASONING_QUERY_ERROR = "Error during synthesis"

	recentJournalDays = 7
)

type recentEntryLister interface {
	List(ctx context.Context, opts types.ListJournalEntryOptions) ([]types.JournalEntry, error)
}

type journalEntryWriter interface {
	createEntryAs(createdBy, sessionID string, args types.CreateJournalEntryArgs, sourceMessageIDs []int64) (*types.JournalEntry, error)
}

type JournalSynthesisLogic struct {
	UserInfo
	ctx     context.Context
	metrics *core.Metrics
	prompt  string
	driver  ai.Query
	lister  recentEntryLister
	writer  journalEntryWriter
}

func NewJournalSynthesisLogic(ctx context.Context, core *core.Core) *JournalSynthesisLogic {
	return &JournalSynthesisLogic{
		ctx:      ctx,
		UserInfo: SetupUserInfo(ctx, core),
		metrics:  core.Metrics(),
		prompt:   core.Cfg().Prompt.JournalSynthesis,
		driver:   core.Srv().AI(),
		lister:   core.Store().JournalEntryStore(),
		writer:   NewJournalLogic(ctx, core),
	}
}

// AssessAndSynthesize 对一轮对话做一次日记评估。
// 分类器调用失败或输出不可解析走软失败,返回零条目的结果而非错误;
// 条目落库失败才返回错误,保证持久化状态不被污染。
func (l *JournalSynthesisLogic) AssessAndSynthesize(sessionID, userMessage, assistantReply string, conversationRef int64, entryDate string) (*types.SynthesisResult, error) {
	recent, err := l.lister.List(l.ctx, types.ListJournalEntryOptions{
		SessionID: sessionID,
		StartDate: time.Now().AddDate(0, 0, -recentJournalDays).Format(types.DATE_LAYOUT),
	})
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalSynthesisLogic.AssessAndSynthesize.List", i18n.ERROR_INTERNAL, err)
	}

	messages := ai.BuildSynthesisMessages(
		l.prompt,
		ai.FormatRecentJournalBrief(recent),
		userMessage,
		assistantReply,
	)

	parsed, ok := l.queryClassifier(sessionID, messages)
	if !ok {
		return parsed.asResult(), nil
	}

	result := parsed.asResult()
	if len(parsed.SuggestedEntries) == 0 {
		return result, nil
	}

	useDate := entryDate
	if useDate == "" {
		useDate = time.Now().Format(types.DATE_LAYOUT)
	}
	var sourceMessageIDs []int64
	if conversationRef > 0 {
		sourceMessageIDs = []int64{conversationRef}
	}

	for _, suggestion := range parsed.SuggestedEntries {
		entry, err := l.writer.createEntryAs(types.JOURNAL_CREATED_BY_AI, sessionID, types.CreateJournalEntryArgs{
			Title:     suggestion.Title,
			Content:   suggestion.Content,
			EntryType: types.ParseEntryType(suggestion.EntryType),
			EntryDate: useDate,
		}, sourceMessageIDs)
		if err != nil {
			return nil, errors.Trace("JournalSynthesisLogic.AssessAndSynthesize", err)
		}
		result.CreatedEntries = append(result.CreatedEntries, *entry)
	}

	return result, nil
}

type synthesisOutcome struct {
	ShouldCreate     bool
	Reasoning        string
	SuggestedEntries []ai.SynthesisSuggestion
}

func (o synthesisOutcome) asResult() *types.SynthesisResult {
	return &types.SynthesisResult{
		ShouldCreate: o.ShouldCreate,
		Reasoning:    o.Reasoning,
	}
}

func (l *JournalSynthesisLogic) queryClassifier(sessionID string, messages []*types.MessageContext) (synthesisOutcome, bool) {
	if l.metrics != nil {
		timer := l.metrics.ClassifierTimer()
		defer timer.ObserveDuration()
	}

	resp, err := l.driver.Query(l.ctx, messages)
	if err != nil {
		slog.Error("journal synthesis classifier request failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		l.classifierErrorInc("query")
		return synthesisOutcome{Reasoning: SYNTHESIS_REASONING_QUERY_ERROR}, false
	}

	parsed, err := ai.ParseSynthesisResponse(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Error("journal synthesis response unparseable", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		l.classifierErrorInc("parse")
		return synthesisOutcome{Reasoning: SYNTHESIS_REASONING_PARSE_ERROR}, false
	}

	return synthesisOutcome{
		ShouldCreate:     parsed.ShouldCreate,
		Reasoning:        parsed.Reasoning,
		SuggestedEntries: parsed.SuggestedEntries,
	}, true
}

func (l *JournalSynthesisLogic) classifierErrorInc(kind string) {
	if l.metrics != nil {
		l.metrics.ClassifierErrorInc(kind)
	}
}
