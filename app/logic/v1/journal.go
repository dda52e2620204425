package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/aretacare/aretacare/app/core"
	"github.com/aretacare/aretacare/app/store"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/types"
	"github.com/aretacare/aretacare/pkg/utils"
)

// journalStores 是日记逻辑依赖的存储子集
type journalStores interface {
	JournalEntryStore() store.JournalEntryStore
	CareSessionStore() store.CareSessionStore
	SessionCollaboratorStore() store.SessionCollaboratorStore
	Transaction(ctx context.Context, next func(ctx context.Context) error) error
}

type JournalLogic struct {
	UserInfo
	ctx   context.Context
	core  *core.Core
	store journalStores
}

func NewJournalLogic(ctx context.Context, core *core.Core) *JournalLogic {
	return &JournalLogic{
		ctx:      ctx,
		core:     core,
		store:    core.Store(),
		UserInfo: SetupUserInfo(ctx, core),
	}
}

// checkSessionAccess 会话的 owner 与协作者拥有同样的条目读写权限。
// 会话不存在与无权限一律返回 not found，不向未授权调用方暴露会话是否存在。
func (l *JournalLogic) checkSessionAccess(sessionID, userID string) (*types.CareSession, error) {
	session, err := l.store.CareSessionStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.checkSessionAccess.CareSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if session == nil {
		return nil, errors.New("JournalLogic.checkSessionAccess.CareSessionStore.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	access := types.SessionAccess{
		IsOwner: session.UserID == userID,
	}
	if !access.IsOwner {
		collaborator, err := l.store.SessionCollaboratorStore().Get(l.ctx, sessionID, userID)
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("JournalLogic.checkSessionAccess.SessionCollaboratorStore.Get", i18n.ERROR_INTERNAL, err)
		}
		access.IsCollaborator = collaborator != nil
	}

	if !access.Allowed() {
		return nil, errors.New("JournalLogic.checkSessionAccess.denied", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	return session, nil
}

func validateEntryArgs(args types.CreateJournalEntryArgs) error {
	if args.Title == "" || len([]rune(args.Title)) > types.JOURNAL_TITLE_MAX_LENGTH {
		return errors.New("JournalLogic.validateEntryArgs.title", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if !args.EntryType.Valid() {
		return errors.New("JournalLogic.validateEntryArgs.entryType", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.EntryDate != "" {
		if _, err := time.Parse(types.DATE_LAYOUT, args.EntryDate); err != nil {
			return errors.New("JournalLogic.validateEntryArgs.entryDate", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}
	return nil
}

// CheckSessionAccess 暴露给 HTTP 层在只读场景下做前置权限校验
func (l *JournalLogic) CheckSessionAccess(sessionID string) error {
	if _, err := l.checkSessionAccess(sessionID, l.GetUserID()); err != nil {
		return errors.Trace("JournalLogic.CheckSessionAccess", err)
	}
	return nil
}

// CreateEntry 用户手动创建日记条目
func (l *JournalLogic) CreateEntry(sessionID string, args types.CreateJournalEntryArgs) (*types.JournalEntry, error) {
	if _, err := l.checkSessionAccess(sessionID, l.GetUserID()); err != nil {
		return nil, errors.Trace("JournalLogic.CreateEntry", err)
	}

	return l.createEntryAs(l.GetUserID(), sessionID, args, nil)
}

// createEntryAs 条目写入与会话计数刷新在同一事务内完成，要么全部生效要么全部回滚
func (l *JournalLogic) createEntryAs(createdBy, sessionID string, args types.CreateJournalEntryArgs, sourceMessageIDs []int64) (*types.JournalEntry, error) {
	if err := validateEntryArgs(args); err != nil {
		return nil, errors.Trace("JournalLogic.createEntryAs", err)
	}

	if args.EntryDate == "" {
		args.EntryDate = time.Now().Format(types.DATE_LAYOUT)
	}

	now := time.Now().Unix()
	entry := types.JournalEntry{
		ID:               utils.GenUniqID(),
		SessionID:        sessionID,
		EntryDate:        args.EntryDate,
		EntryType:        args.EntryType,
		Title:            args.Title,
		Content:          args.Content,
		CreatedBy:        createdBy,
		Metadata:         args.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceMessageIDs: sourceMessageIDs,
	}

	err := l.store.Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.store.JournalEntryStore().Create(ctx, entry); err != nil {
			return err
		}
		return l.store.CareSessionStore().IncrJournalCount(ctx, sessionID, now)
	})
	if err != nil {
		return nil, errors.New("JournalLogic.createEntryAs.Transaction", i18n.ERROR_INTERNAL, err)
	}

	return &entry, nil
}

// getEntryWithAccess 条目不存在与无权限同样合并为 not found
func (l *JournalLogic) getEntryWithAccess(entryID int64) (*types.JournalEntry, error) {
	entry, err := l.store.JournalEntryStore().Get(l.ctx, entryID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.getEntryWithAccess.JournalEntryStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if entry == nil {
		return nil, errors.New("JournalLogic.getEntryWithAccess.JournalEntryStore.Get.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if _, err = l.checkSessionAccess(entry.SessionID, l.GetUserID()); err != nil {
		return nil, errors.Trace("JournalLogic.getEntryWithAccess", err)
	}

	return entry, nil
}

func (l *JournalLogic) UpdateEntry(entryID int64, updates types.UpdateJournalEntryArgs) (*types.JournalEntry, error) {
	if _, err := l.getEntryWithAccess(entryID); err != nil {
		return nil, errors.Trace("JournalLogic.UpdateEntry", err)
	}

	if updates.Title != nil && (len([]rune(*updates.Title)) > types.JOURNAL_TITLE_MAX_LENGTH || *updates.Title == "") {
		return nil, errors.New("JournalLogic.UpdateEntry.title", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if updates.EntryType != nil && !updates.EntryType.Valid() {
		return nil, errors.New("JournalLogic.UpdateEntry.entryType", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if updates.EntryDate != nil {
		if _, err := time.Parse(types.DATE_LAYOUT, *updates.EntryDate); err != nil {
			return nil, errors.New("JournalLogic.UpdateEntry.entryDate", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}

	if err := l.store.JournalEntryStore().Update(l.ctx, entryID, updates); err != nil {
		return nil, errors.New("JournalLogic.UpdateEntry.JournalEntryStore.Update", i18n.ERROR_INTERNAL, err)
	}

	updated, err := l.store.JournalEntryStore().Get(l.ctx, entryID)
	if err != nil {
		return nil, errors.New("JournalLogic.UpdateEntry.JournalEntryStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return updated, nil
}

func (l *JournalLogic) DeleteEntry(entryID int64) error {
	entry, err := l.getEntryWithAccess(entryID)
	if err != nil {
		return errors.Trace("JournalLogic.DeleteEntry", err)
	}

	err = l.store.Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.store.JournalEntryStore().Delete(ctx, entry.ID); err != nil {
			return err
		}
		return l.store.CareSessionStore().DecrJournalCount(ctx, entry.SessionID)
	})
	if err != nil {
		return errors.New("JournalLogic.DeleteEntry.Transaction", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// ListEntriesByDateRange 按 ISO 日期分组，组内按创建时间倒序
func (l *JournalLogic) ListEntriesByDateRange(sessionID, startDate, endDate string) (map[string][]types.JournalEntry, error) {
	if _, err := l.checkSessionAccess(sessionID, l.GetUserID()); err != nil {
		return nil, errors.Trace("JournalLogic.ListEntriesByDateRange", err)
	}

	list, err := l.store.JournalEntryStore().List(l.ctx, types.ListJournalEntryOptions{
		SessionID: sessionID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.ListEntriesByDateRange.JournalEntryStore.List", i18n.ERROR_INTERNAL, err)
	}

	return lo.GroupBy(list, func(item types.JournalEntry) string {
		return item.EntryDate
	}), nil
}

func (l *JournalLogic) ListEntriesForDate(sessionID, date string) ([]types.JournalEntry, error) {
	if _, err := l.checkSessionAccess(sessionID, l.GetUserID()); err != nil {
		return nil, errors.Trace("JournalLogic.ListEntriesForDate", err)
	}

	list, err := l.store.JournalEntryStore().ListForDate(l.ctx, sessionID, date)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("JournalLogic.ListEntriesForDate.JournalEntryStore.ListForDate", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}
