package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/aretacare/aretacare/app/logic/v1"
	"github.com/aretacare/aretacare/app/response"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/utils"
)

type CreateAccessTokenRequest struct {
	Info string `json:"info" form:"info"`
	Days int    `json:"days" form:"days"`
}

func (s *HttpSrv) CreateAccessToken(c *gin.Context) {
	var (
		err error
		req CreateAccessTokenRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.Days <= 0 {
		req.Days = 30
	}

	token, err := v1.NewAuthLogic(c, s.Core).GenAccessToken(req.Info, time.Now().AddDate(0, 0, req.Days).Unix())
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, gin.H{
		"token": token,
	})
}

func (s *HttpSrv) DeleteAccessToken(c *gin.Context) {
	tokenID, err := parseTokenID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewAuthLogic(c, s.Core).DeleteAccessToken(tokenID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func parseTokenID(c *gin.Context) (int64, error) {
	raw, _ := c.Params.Get("tokenid")
	tokenID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("api.parseTokenID", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	return tokenID, nil
}
