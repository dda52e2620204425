package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/aretacare/aretacare/app/logic/v1"
	"github.com/aretacare/aretacare/app/response"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/i18n"
	"github.com/aretacare/aretacare/pkg/types"
	"github.com/aretacare/aretacare/pkg/utils"
)

type CreateJournalEntryRequest struct {
	Title     string          `json:"title" form:"title" binding:"required"`
	Content   string          `json:"content" form:"content" binding:"required"`
	EntryType string          `json:"entry_type" form:"entry_type" binding:"required"`
	EntryDate string          `json:"entry_date" form:"entry_date"`
	Metadata  json.RawMessage `json:"metadata" form:"metadata"`
}

func (s *HttpSrv) CreateJournalEntry(c *gin.Context) {
	var (
		err error
		req CreateJournalEntryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	entry, err := v1.NewJournalLogic(c, s.Core).CreateEntry(sessionID, types.CreateJournalEntryArgs{
		Title:     req.Title,
		Content:   req.Content,
		EntryType: types.EntryType(req.EntryType),
		EntryDate: req.EntryDate,
		Metadata:  req.Metadata,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, entry)
}

// ListJournalEntriesRequest 日期边界均可省略，都省略时返回会话全部条目
type ListJournalEntriesRequest struct {
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
}

func (r *ListJournalEntriesRequest) Validate() error {
	var start, end time.Time
	var err error

	if r.StartDate != "" {
		if start, err = time.Parse(types.DATE_LAYOUT, r.StartDate); err != nil {
			return errors.New("api.ListJournalEntries.Validate.StartDate", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}

	if r.EndDate != "" {
		if end, err = time.Parse(types.DATE_LAYOUT, r.EndDate); err != nil {
			return errors.New("api.ListJournalEntries.Validate.EndDate", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
	}

	if r.StartDate != "" && r.EndDate != "" && end.Before(start) {
		return errors.New("api.ListJournalEntries.Validate.Range", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	return nil
}

func (s *HttpSrv) ListJournalEntries(c *gin.Context) {
	var (
		err error
		req ListJournalEntriesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = req.Validate(); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	grouped, err := v1.NewJournalLogic(c, s.Core).ListEntriesByDateRange(sessionID, req.StartDate, req.EndDate)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, grouped)
}

func (s *HttpSrv) ListJournalEntriesForDate(c *gin.Context) {
	date, _ := c.Params.Get("date")
	if _, err := time.Parse(types.DATE_LAYOUT, date); err != nil {
		response.APIError(c, errors.New("api.ListJournalEntriesForDate.date", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	list, err := v1.NewJournalLogic(c, s.Core).ListEntriesForDate(sessionID, date)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type UpdateJournalEntryRequest struct {
	Title     *string `json:"title" form:"title"`
	Content   *string `json:"content" form:"content"`
	EntryType *string `json:"entry_type" form:"entry_type"`
	EntryDate *string `json:"entry_date" form:"entry_date"`
}

func (s *HttpSrv) UpdateJournalEntry(c *gin.Context) {
	var (
		err error
		req UpdateJournalEntryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entryID, err := parseEntryID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}

	args := types.UpdateJournalEntryArgs{
		Title:     req.Title,
		Content:   req.Content,
		EntryDate: req.EntryDate,
	}
	if req.EntryType != nil {
		entryType := types.EntryType(*req.EntryType)
		args.EntryType = &entryType
	}

	entry, err := v1.NewJournalLogic(c, s.Core).UpdateEntry(entryID, args)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, entry)
}

func (s *HttpSrv) DeleteJournalEntry(c *gin.Context) {
	entryID, err := parseEntryID(c)
	if err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewJournalLogic(c, s.Core).DeleteEntry(entryID); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func parseEntryID(c *gin.Context) (int64, error) {
	raw, _ := c.Params.Get("entryid")
	entryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("api.parseEntryID", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	return entryID, nil
}

type JournalContextRequest struct {
	MaxTokens int `json:"max_tokens" form:"max_tokens"`
}

func (s *HttpSrv) GetJournalContext(c *gin.Context) {
	var (
		err error
		req JournalContextRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	sessionID, _ := c.Params.Get("sessionid")
	logic := v1.NewJournalLogic(c, s.Core)
	if err = logic.CheckSessionAccess(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, gin.H{
		"context": logic.FormatContext(sessionID, req.MaxTokens),
	})
}

type SynthesizeJournalRequest struct {
	UserMessage     string `json:"user_message" form:"user_message" binding:"required"`
	AssistantReply  string `json:"assistant_reply" form:"assistant_reply" binding:"required"`
	ConversationRef int64  `json:"conversation_ref" form:"conversation_ref"`
	EntryDate       string `json:"entry_date" form:"entry_date"`
}

func (s *HttpSrv) SynthesizeJournal(c *gin.Context) {
	var (
		err error
		req SynthesizeJournalRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.EntryDate != "" {
		if _, err = time.Parse(types.DATE_LAYOUT, req.EntryDate); err != nil {
			response.APIError(c, errors.New("api.SynthesizeJournal.EntryDate", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
			return
		}
	}

	sessionID, _ := c.Params.Get("sessionid")
	if err = v1.NewJournalLogic(c, s.Core).CheckSessionAccess(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewJournalSynthesisLogic(c, s.Core).AssessAndSynthesize(sessionID, req.UserMessage, req.AssistantReply, req.ConversationRef, req.EntryDate)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
