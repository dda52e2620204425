package middleware

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretacare/aretacare/app/core"
	v1 "github.com/aretacare/aretacare/app/logic/v1"
	"github.com/aretacare/aretacare/app/response"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

const (
	ACCESS_TOKEN_HEADER_KEY = "X-Access-Token"
)

func Authorization(core *core.Core) gin.HandlerFunc {
	tracePrefix := "middleware.Authorization"
	return func(c *gin.Context) {
		tokenValue := c.GetHeader(ACCESS_TOKEN_HEADER_KEY)
		if tokenValue == "" {
			response.APIError(c, errors.New(tracePrefix, i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
			return
		}

		token, err := core.Store().AccessTokenStore().GetAccessToken(c, tokenValue)
		if err != nil && err != sql.ErrNoRows {
			response.APIError(c, errors.New(tracePrefix+".AccessTokenStore.GetAccessToken", i18n.ERROR_INTERNAL, err))
			return
		}

		if token == nil || err == sql.ErrNoRows || token.ExpiresAt < time.Now().Unix() {
			response.APIError(c, errors.New(tracePrefix+".token.check", i18n.ERROR_UNAUTHORIZED, fmt.Errorf("nil token")).Code(http.StatusUnauthorized))
			return
		}

		c.Set(v1.TOKEN_CONTEXT_KEY, token.UserID)
	}
}

// Metrics 记录每个路由的响应耗时与错误数
func Metrics(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := core.Metrics().ApiResponseTimer(c.FullPath())
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			core.Metrics().ApiErrorInc(c.Request.Method, c.FullPath(), status)
		}
	}
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Access-Token")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}
