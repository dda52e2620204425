package v1

import (
	"context"
	"log/slog"

	"github.com/aretacare/aretacare/app/core"
)

const (
	TOKEN_CONTEXT_KEY = "__areta.access_user"
)

// InjectUserID get authorized user id from context
func InjectUserID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(TOKEN_CONTEXT_KEY).(string)
	return val, ok
}

type UserInfo struct {
	user string
}

func SetupUserInfo(ctx context.Context, core *core.Core) UserInfo {
	userID, ok := InjectUserID(ctx)
	if !ok {
		slog.Error("Not found user in context", slog.String("component", "logic.v1.SetupUserInfo"))
	}
	return UserInfo{
		user: userID,
	}
}

func (u UserInfo) GetUserID() string {
	return u.user
}
