package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretacare/aretacare/pkg/utils"
)

func TestListJournalEntriesBindingOptionalDates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bind := func(target string) (ListJournalEntriesRequest, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)

		var req ListJournalEntriesRequest
		if err := utils.BindArgsWithGin(c, &req); err != nil {
			return req, err
		}
		return req, req.Validate()
	}

	t.Run("no params", func(t *testing.T) {
		req, err := bind("/api/v1/journal/s1")
		require.NoError(t, err)
		assert.Empty(t, req.StartDate)
		assert.Empty(t, req.EndDate)
	})

	t.Run("start only", func(t *testing.T) {
		req, err := bind("/api/v1/journal/s1?start_date=2026-08-01")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-01", req.StartDate)
	})

	t.Run("end only", func(t *testing.T) {
		req, err := bind("/api/v1/journal/s1?end_date=2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-30", req.EndDate)
	})

	t.Run("both bounds", func(t *testing.T) {
		_, err := bind("/api/v1/journal/s1?start_date=2026-08-01&end_date=2026-08-30")
		require.NoError(t, err)
	})

	t.Run("reversed range", func(t *testing.T) {
		_, err := bind("/api/v1/journal/s1?start_date=2026-08-30&end_date=2026-08-01")
		require.Error(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := bind("/api/v1/journal/s1?start_date=08/30/2026")
		require.Error(t, err)
	})
}
