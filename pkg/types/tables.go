package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "areta_"

const (
	TABLE_CARE_SESSION         = TableName("care_session")
	TABLE_SESSION_COLLABORATOR = TableName("session_collaborator")
	TABLE_JOURNAL_ENTRY        = TableName("journal_entry")
	TABLE_ACCESS_TOKEN         = TableName("access_token")
)
