package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/aretacare/aretacare/app/logic/v1"
	"github.com/aretacare/aretacare/app/response"
	"github.com/aretacare/aretacare/pkg/utils"
)

type CreateSessionRequest struct {
	Title string `json:"title" form:"title" binding:"required"`
}

func (s *HttpSrv) CreateSession(c *gin.Context) {
	var (
		err error
		req CreateSessionRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	session, err := v1.NewCareSessionLogic(c, s.Core).CreateSession(req.Title)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

func (s *HttpSrv) GetSession(c *gin.Context) {
	sessionID, _ := c.Params.Get("sessionid")
	session, err := v1.NewCareSessionLogic(c, s.Core).GetSession(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

type ListSessionsRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize"`
}

func (s *HttpSrv) ListSessions(c *gin.Context) {
	var (
		err error
		req ListSessionsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 || req.PageSize > 50 {
		req.PageSize = 20
	}

	list, err := v1.NewCareSessionLogic(c, s.Core).ListSessions(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) DeleteSession(c *gin.Context) {
	sessionID, _ := c.Params.Get("sessionid")
	if err := v1.NewCareSessionLogic(c, s.Core).DeleteSession(sessionID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type CollaboratorRequest struct {
	UserID string `json:"user_id" form:"user_id" binding:"required"`
}

func (s *HttpSrv) AddSessionCollaborator(c *gin.Context) {
	var (
		err error
		req CollaboratorRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	if err = v1.NewCareSessionLogic(c, s.Core).AddCollaborator(sessionID, req.UserID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListSessionCollaborators(c *gin.Context) {
	sessionID, _ := c.Params.Get("sessionid")
	list, err := v1.NewCareSessionLogic(c, s.Core).ListCollaborators(sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) RemoveSessionCollaborator(c *gin.Context) {
	var (
		err error
		req CollaboratorRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	if err = v1.NewCareSessionLogic(c, s.Core).RemoveCollaborator(sessionID, req.UserID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
