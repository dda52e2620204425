package v1

import (
	"context"
	"time"

	"github.com/aretacare/aretacare/app/core"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/types"
	"github.com/aretacare/aretacare/pkg/utils"
)

type AuthLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewAuthLogic(ctx context.Context, core *core.Core) *AuthLogic {
	return &AuthLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

// GenAccessToken 给当前用户签发一枚新的访问令牌
func (l *AuthLogic) GenAccessToken(info string, expiresAt int64) (string, error) {
	token := types.AccessToken{
		ID:        utils.GenUniqID(),
		UserID:    l.GetUserID(),
		Token:     utils.RandomStr(64),
		Info:      info,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().Unix(),
	}

	if err := l.core.Store().AccessTokenStore().Create(l.ctx, token); err != nil {
		return "", errors.New("AuthLogic.GenAccessToken.AccessTokenStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return token.Token, nil
}

// DeleteAccessToken 只能删除归属当前用户的令牌
func (l *AuthLogic) DeleteAccessToken(id int64) error {
	if err := l.core.Store().AccessTokenStore().Delete(l.ctx, l.GetUserID(), id); err != nil {
		return errors.New("AuthLogic.DeleteAccessToken.AccessTokenStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
