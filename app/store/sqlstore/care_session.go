package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aretacare/aretacare/pkg/register"
	"github.com/aretacare/aretacare/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.CareSessionStore = NewCareSessionStore(provider)
	})
}

type CareSessionStore struct {
	CommonFields
}

func NewCareSessionStore(provider SqlProviderAchieve) *CareSessionStore {
	repo := &CareSessionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CARE_SESSION)
	repo.SetAllColumns("id", "user_id", "title", "journal_entry_count", "last_journal_synthesis", "created_at", "updated_at")
	return repo
}

// Create
func (s *CareSessionStore) Create(ctx context.Context, data types.CareSession) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "title", "journal_entry_count", "last_journal_synthesis", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.Title, data.JournalEntryCount, data.LastJournalSynthesis, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return err
	}
	return nil
}

// Get
func (s *CareSessionStore) Get(ctx context.Context, id string) (*types.CareSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.CareSession
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete 对应的日记条目随外键级联删除
func (s *CareSessionStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List
func (s *CareSessionStore) List(ctx context.Context, userID string, page, pageSize uint64) ([]types.CareSession, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID}).
		Limit(pageSize).Offset((page - 1) * pageSize).OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.CareSession
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// IncrJournalCount 数据库层原子自增，并发合成下不丢失更新
func (s *CareSessionStore) IncrJournalCount(ctx context.Context, id string, synthesisAt int64) error {
	query := sq.Update(s.GetTable()).
		Set("journal_entry_count", sq.Expr("journal_entry_count + 1")).
		Set("last_journal_synthesis", synthesisAt).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// DecrJournalCount 原子自减，GREATEST 保证计数不会为负
func (s *CareSessionStore) DecrJournalCount(ctx context.Context, id string) error {
	query := sq.Update(s.GetTable()).
		Set("journal_entry_count", sq.Expr("GREATEST(journal_entry_count - 1, 0)")).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
