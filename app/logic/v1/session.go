package v1

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/aretacare/aretacare/app/core"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/types"
	"github.com/aretacare/aretacare/pkg/utils"
)

type CareSessionLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewCareSessionLogic(ctx context.Context, core *core.Core) *CareSessionLogic {
	return &CareSessionLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *CareSessionLogic) CreateSession(title string) (*types.CareSession, error) {
	now := time.Now().Unix()
	session := types.CareSession{
		ID:        utils.GenRandomID(),
		UserID:    l.GetUserID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.core.Store().CareSessionStore().Create(l.ctx, session); err != nil {
		return nil, errors.New("CareSessionLogic.CreateSession.CareSessionStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &session, nil
}

func (l *CareSessionLogic) GetSession(sessionID string) (*types.CareSession, error) {
	session, err := l.core.Store().CareSessionStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("CareSessionLogic.GetSession.CareSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if session == nil {
		return nil, errors.New("CareSessionLogic.GetSession.nil", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if session.UserID != l.GetUserID() {
		collaborator, err := l.core.Store().SessionCollaboratorStore().Get(l.ctx, sessionID, l.GetUserID())
		if err != nil && err != sql.ErrNoRows {
			return nil, errors.New("CareSessionLogic.GetSession.SessionCollaboratorStore.Get", i18n.ERROR_INTERNAL, err)
		}
		if collaborator == nil {
			return nil, errors.New("CareSessionLogic.GetSession.denied", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
		}
	}
	return session, nil
}

func (l *CareSessionLogic) ListSessions(page, pageSize uint64) ([]types.CareSession, error) {
	list, err := l.core.Store().CareSessionStore().List(l.ctx, l.GetUserID(), page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("CareSessionLogic.ListSessions.CareSessionStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

// DeleteSession 只有 owner 可以删除会话,条目随会话一并删除
func (l *CareSessionLogic) DeleteSession(sessionID string) error {
	session, err := l.core.Store().CareSessionStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CareSessionLogic.DeleteSession.CareSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if session == nil || session.UserID != l.GetUserID() {
		return errors.New("CareSessionLogic.DeleteSession.denied", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().JournalEntryStore().DeleteAll(ctx, sessionID); err != nil {
			return err
		}
		return l.core.Store().CareSessionStore().Delete(ctx, sessionID)
	})
	if err != nil {
		return errors.New("CareSessionLogic.DeleteSession.Transaction", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// AddCollaborator owner 邀请其他用户共同维护会话
func (l *CareSessionLogic) AddCollaborator(sessionID, userID string) error {
	session, err := l.core.Store().CareSessionStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CareSessionLogic.AddCollaborator.CareSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if session == nil || session.UserID != l.GetUserID() {
		return errors.New("CareSessionLogic.AddCollaborator.denied", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	exist, err := l.core.Store().SessionCollaboratorStore().Get(l.ctx, sessionID, userID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CareSessionLogic.AddCollaborator.SessionCollaboratorStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return errors.New("CareSessionLogic.AddCollaborator.exist", i18n.ERROR_EXIST, nil).Code(http.StatusForbidden)
	}

	err = l.core.Store().SessionCollaboratorStore().Create(l.ctx, types.SessionCollaborator{
		SessionID: sessionID,
		UserID:    userID,
		Role:      types.SESSION_ROLE_COLLABORATOR,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.New("CareSessionLogic.AddCollaborator.SessionCollaboratorStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *CareSessionLogic) ListCollaborators(sessionID string) ([]types.SessionCollaborator, error) {
	if _, err := l.GetSession(sessionID); err != nil {
		return nil, errors.Trace("CareSessionLogic.ListCollaborators", err)
	}

	list, err := l.core.Store().SessionCollaboratorStore().List(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("CareSessionLogic.ListCollaborators.SessionCollaboratorStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *CareSessionLogic) RemoveCollaborator(sessionID, userID string) error {
	session, err := l.core.Store().CareSessionStore().Get(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return errors.New("CareSessionLogic.RemoveCollaborator.CareSessionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if session == nil || session.UserID != l.GetUserID() {
		return errors.New("CareSessionLogic.RemoveCollaborator.denied", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().SessionCollaboratorStore().Delete(l.ctx, sessionID, userID); err != nil {
		return errors.New("CareSessionLogic.RemoveCollaborator.SessionCollaboratorStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
