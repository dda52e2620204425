package service

import (
	"github.com/aretacare/aretacare/app/core"
	"github.com/aretacare/aretacare/app/response"
	"github.com/aretacare/aretacare/cmd/service/handler"
	"github.com/aretacare/aretacare/cmd/service/middleware"
	"github.com/aretacare/aretacare/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors, middleware.Metrics(s.Core))
	apiV1 := s.Engine.Group("/api/v1")
	{
		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))

		authed.POST("/token", s.CreateAccessToken)
		authed.DELETE("/token/:tokenid", s.DeleteAccessToken)

		session := authed.Group("/session")
		{
			session.POST("", s.CreateSession)
			session.GET("/list", s.ListSessions)
			session.GET("/:sessionid", s.GetSession)
			session.DELETE("/:sessionid", s.DeleteSession)
			session.GET("/:sessionid/collaborator/list", s.ListSessionCollaborators)
			session.POST("/:sessionid/collaborator", s.AddSessionCollaborator)
			session.DELETE("/:sessionid/collaborator", s.RemoveSessionCollaborator)
		}

		journal := authed.Group("/journal")
		{
			journal.GET("/:sessionid", s.ListJournalEntries)
			journal.GET("/:sessionid/date/:date", s.ListJournalEntriesForDate)
			journal.POST("/:sessionid", s.CreateJournalEntry)
			journal.GET("/:sessionid/context", s.GetJournalContext)
			journal.POST("/:sessionid/synthesize", s.SynthesizeJournal)
			journal.PUT("/entry/:entryid", s.UpdateJournalEntry)
			journal.DELETE("/entry/:entryid", s.DeleteJournalEntry)
		}
	}
}
