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
		provider.stores.SessionCollaboratorStore = NewSessionCollaboratorStore(provider)
	})
}

// SessionCollaboratorStore 用于处理会话与协作者关系表的操作
type SessionCollaboratorStore struct {
	CommonFields
}

func NewSessionCollaboratorStore(provider SqlProviderAchieve) *SessionCollaboratorStore {
	repo := &SessionCollaboratorStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SESSION_COLLABORATOR)
	repo.SetAllColumns("session_id", "user_id", "role", "created_at")
	return repo
}

// Create
func (s *SessionCollaboratorStore) Create(ctx context.Context, data types.SessionCollaborator) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.Role == "" {
		data.Role = types.SESSION_ROLE_COLLABORATOR
	}
	query := sq.Insert(s.GetTable()).
		Columns("session_id", "user_id", "role", "created_at").
		Values(data.SessionID, data.UserID, data.Role, data.CreatedAt)

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
func (s *SessionCollaboratorStore) Get(ctx context.Context, sessionID, userID string) (*types.SessionCollaborator, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_id": sessionID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.SessionCollaborator
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete
func (s *SessionCollaboratorStore) Delete(ctx context.Context, sessionID, userID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"session_id": sessionID, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// List
func (s *SessionCollaboratorStore) List(ctx context.Context, sessionID string) ([]types.SessionCollaborator, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.SessionCollaborator
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
