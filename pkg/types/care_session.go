package types

type CareSession struct {
	ID                   string `json:"id" db:"id"`
	UserID               string `json:"user_id" db:"user_id"`
	Title                string `json:"title" db:"title"`
	JournalEntryCount    int64  `json:"journal_entry_count" db:"journal_entry_count"`
	LastJournalSynthesis int64  `json:"last_journal_synthesis" db:"last_journal_synthesis"`
	CreatedAt            int64  `json:"created_at" db:"created_at"`
	UpdatedAt            int64  `json:"updated_at" db:"updated_at"`
}

const (
	SESSION_ROLE_COLLABORATOR = "collaborator"
)

type SessionCollaborator struct {
	SessionID string `json:"session_id" db:"session_id"`
	UserID    string `json:"user_id" db:"user_id"`
	Role      string `json:"role" db:"role"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// SessionAccess 权限检查结果
type SessionAccess struct {
	IsOwner        bool
	IsCollaborator bool
}

func (a SessionAccess) Allowed() bool {
	return a.IsOwner || a.IsCollaborator
}
