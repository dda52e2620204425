package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretacare/aretacare/pkg/types"
	"github.com/aretacare/aretacare/pkg/utils"
)

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("ARETA_API_POSTGRESQL_DSN")
}

func (m PGConfig) FormatDSN() string {
	return m.DSN
}

func setupTestProvider(t *testing.T) *Provider {
	cfg := PGConfig{}
	cfg.FromENV()
	if cfg.DSN == "" {
		t.Skip("ARETA_API_POSTGRESQL_DSN not set")
	}

	p := MustSetup(cfg)()
	require.NoError(t, p.Install())
	return p
}

func createTestSession(t *testing.T, p *Provider, ctx context.Context) types.CareSession {
	session := types.CareSession{
		ID:        utils.GenRandomID(),
		UserID:    utils.GenRandomID(),
		Title:     "test session",
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	require.NoError(t, p.CareSessionStore().Create(ctx, session))
	return session
}

func TestJournalEntryRoundTrip(t *testing.T) {
	p := setupTestProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	session := createTestSession(t, p, ctx)

	entry := types.JournalEntry{
		ID:        utils.GenUniqID(),
		SessionID: session.ID,
		EntryDate: "2026-08-30",
		EntryType: types.ENTRY_TYPE_MEDICAL_UPDATE,
		Title:     "round trip entry",
		Content:   "content body",
		CreatedBy: session.UserID,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	require.NoError(t, p.JournalEntryStore().Create(ctx, entry))

	list, err := p.JournalEntryStore().ListForDate(ctx, session.ID, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Equal(t, entry.Title, list[0].Title)
	assert.Equal(t, entry.Content, list[0].Content)
	assert.Equal(t, entry.EntryType, list[0].EntryType)
	assert.Equal(t, entry.EntryDate, list[0].EntryDate)

	total, err := p.JournalEntryStore().Total(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTransactionPanicRollsBack(t *testing.T) {
	p := setupTestProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	session := createTestSession(t, p, ctx)

	entry := types.JournalEntry{
		ID:        utils.GenUniqID(),
		SessionID: session.ID,
		EntryDate: "2026-08-30",
		EntryType: types.ENTRY_TYPE_QUESTION,
		Title:     "never persisted",
		Content:   "written before the panic",
		CreatedBy: session.UserID,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	err := p.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, p.JournalEntryStore().Create(ctx, entry))
		panic("boom")
	})
	require.Error(t, err)

	got, err := p.JournalEntryStore().Get(ctx, entry.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, got)
}

func TestJournalCountNeverNegative(t *testing.T) {
	p := setupTestProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	session := createTestSession(t, p, ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.CareSessionStore().IncrJournalCount(ctx, session.ID, time.Now().Unix()))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, p.CareSessionStore().DecrJournalCount(ctx, session.ID))
	}

	got, err := p.CareSessionStore().Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.JournalEntryCount)

	// 自减不会把计数打到负数
	for i := 0; i < 5; i++ {
		require.NoError(t, p.CareSessionStore().DecrJournalCount(ctx, session.ID))
	}

	got, err = p.CareSessionStore().Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.JournalEntryCount)
}
