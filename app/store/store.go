package store

import (
	"context"

	"github.com/aretacare/aretacare/pkg/sqlstore"
	"github.com/aretacare/aretacare/pkg/types"
)

// JournalEntryStore 定义日记条目表的方法集合
type JournalEntryStore interface {
	sqlstore.SqlCommons
	// Create 创建新的日记条目
	Create(ctx context.Context, data types.JournalEntry) error
	// Get 根据ID获取日记条目
	Get(ctx context.Context, id int64) (*types.JournalEntry, error)
	// Update 更新条目的 title/content/type/date
	Update(ctx context.Context, id int64, args types.UpdateJournalEntryArgs) error
	// Delete 删除日记条目
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context, sessionID string) error
	// List 按条件获取条目，entry_date DESC, created_at DESC
	List(ctx context.Context, opts types.ListJournalEntryOptions) ([]types.JournalEntry, error)
	// ListForDate 获取某天的全部条目，created_at DESC
	ListForDate(ctx context.Context, sessionID, date string) ([]types.JournalEntry, error)
	Total(ctx context.Context, sessionID string) (int64, error)
}

// CareSessionStore 定义照护会话表的方法集合
type CareSessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.CareSession) error
	Get(ctx context.Context, id string) (*types.CareSession, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string, page, pageSize uint64) ([]types.CareSession, error)
	// IncrJournalCount 原子自增条目计数并刷新最近合成时间
	IncrJournalCount(ctx context.Context, id string, synthesisAt int64) error
	// DecrJournalCount 原子自减条目计数，下限为 0
	DecrJournalCount(ctx context.Context, id string) error
}

type SessionCollaboratorStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.SessionCollaborator) error
	Get(ctx context.Context, sessionID, userID string) (*types.SessionCollaborator, error)
	Delete(ctx context.Context, sessionID, userID string) error
	List(ctx context.Context, sessionID string) ([]types.SessionCollaborator, error)
}

type AccessTokenStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.AccessToken) error
	GetAccessToken(ctx context.Context, token string) (*types.AccessToken, error)
	Delete(ctx context.Context, userID string, id int64) error
}
