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
		provider.stores.JournalEntryStore = NewJournalEntryStore(provider)
	})
}

type JournalEntryStore struct {
	CommonFields
}

func NewJournalEntryStore(provider SqlProviderAchieve) *JournalEntryStore {
	repo := &JournalEntryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_JOURNAL_ENTRY)
	repo.SetAllColumns("id", "session_id", "entry_date", "entry_type", "title", "content",
		"created_by", "created_at", "updated_at", "source_message_ids", "metadata")
	return repo
}

// Create
func (s *JournalEntryStore) Create(ctx context.Context, data types.JournalEntry) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "session_id", "entry_date", "entry_type", "title", "content",
			"created_by", "created_at", "updated_at", "source_message_ids", "metadata").
		Values(data.ID, data.SessionID, data.EntryDate, data.EntryType, data.Title, data.Content,
			data.CreatedBy, data.CreatedAt, data.UpdatedAt, data.SourceMessageIDs, data.Metadata)

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
func (s *JournalEntryStore) Get(ctx context.Context, id int64) (*types.JournalEntry, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.JournalEntry
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *JournalEntryStore) Update(ctx context.Context, id int64, args types.UpdateJournalEntryArgs) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().Unix(),
	}
	if args.Title != nil {
		updates["title"] = *args.Title
	}
	if args.Content != nil {
		updates["content"] = *args.Content
	}
	if args.EntryType != nil {
		updates["entry_type"] = *args.EntryType
	}
	if args.EntryDate != nil {
		updates["entry_date"] = *args.EntryDate
	}

	query := sq.Update(s.GetTable()).SetMap(updates).Where(sq.Eq{"id": id})

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...); err != nil {
		return err
	}
	return nil
}

// Delete
func (s *JournalEntryStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *JournalEntryStore) DeleteAll(ctx context.Context, sessionID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"session_id": sessionID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List 按日期范围获取条目，范围端点为空时不限制
func (s *JournalEntryStore) List(ctx context.Context, opts types.ListJournalEntryOptions) ([]types.JournalEntry, error) {
	cond := sq.And{sq.Eq{"session_id": opts.SessionID}}
	if opts.StartDate != "" {
		cond = append(cond, sq.GtOrEq{"entry_date": opts.StartDate})
	}
	if opts.EndDate != "" {
		cond = append(cond, sq.LtOrEq{"entry_date": opts.EndDate})
	}

	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(cond).
		OrderBy("entry_date DESC", "created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.JournalEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *JournalEntryStore) ListForDate(ctx context.Context, sessionID, date string) ([]types.JournalEntry, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"session_id": sessionID, "entry_date": date}).
		OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.JournalEntry
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *JournalEntryStore) Total(ctx context.Context, sessionID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"session_id": sessionID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var total int64
	if err = s.GetReplica(ctx).Get(&total, queryString, args...); err != nil {
		return 0, err
	}
	return total, nil
}
