package v1

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretacare/aretacare/app/store"
	"github.com/aretacare/aretacare/pkg/errors"
	"github.com/aretacare/aretacare/pkg/types"
)

type fakeSessionStore struct {
	store.CareSessionStore
	sessions  map[string]*types.CareSession
	incrCalls int
	decrCalls int
}

func (s *fakeSessionStore) Get(ctx context.Context, id string) (*types.CareSession, error) {
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return nil, sql.ErrNoRows
}

func (s *fakeSessionStore) IncrJournalCount(ctx context.Context, id string, synthesisAt int64) error {
	s.incrCalls++
	return nil
}

func (s *fakeSessionStore) DecrJournalCount(ctx context.Context, id string) error {
	s.decrCalls++
	return nil
}

type fakeCollaboratorStore struct {
	store.SessionCollaboratorStore
	collaborators map[string]map[string]bool
}

func (s *fakeCollaboratorStore) Get(ctx context.Context, sessionID, userID string) (*types.SessionCollaborator, error) {
	if s.collaborators[sessionID][userID] {
		return &types.SessionCollaborator{SessionID: sessionID, UserID: userID, Role: types.SESSION_ROLE_COLLABORATOR}, nil
	}
	return nil, sql.ErrNoRows
}

type fakeEntryStore struct {
	store.JournalEntryStore
	entries map[int64]*types.JournalEntry
}

func (s *fakeEntryStore) Create(ctx context.Context, data types.JournalEntry) error {
	s.entries[data.ID] = &data
	return nil
}

func (s *fakeEntryStore) Get(ctx context.Context, id int64) (*types.JournalEntry, error) {
	if entry, ok := s.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (s *fakeEntryStore) Update(ctx context.Context, id int64, args types.UpdateJournalEntryArgs) error {
	entry, ok := s.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	if args.Title != nil {
		entry.Title = *args.Title
	}
	if args.Content != nil {
		entry.Content = *args.Content
	}
	if args.EntryType != nil {
		entry.EntryType = *args.EntryType
	}
	if args.EntryDate != nil {
		entry.EntryDate = *args.EntryDate
	}
	return nil
}

func (s *fakeEntryStore) Delete(ctx context.Context, id int64) error {
	delete(s.entries, id)
	return nil
}

type fakeStores struct {
	sessions      *fakeSessionStore
	collaborators *fakeCollaboratorStore
	entries       *fakeEntryStore
}

func (s *fakeStores) JournalEntryStore() store.JournalEntryStore { return s.entries }

func (s *fakeStores) CareSessionStore() store.CareSessionStore { return s.sessions }

func (s *fakeStores) SessionCollaboratorStore() store.SessionCollaboratorStore {
	return s.collaborators
}

func (s *fakeStores) Transaction(ctx context.Context, next func(ctx context.Context) error) error {
	return next(ctx)
}

func newTestJournalLogic(user string, stores *fakeStores) *JournalLogic {
	return &JournalLogic{
		ctx:      context.Background(),
		store:    stores,
		UserInfo: UserInfo{user: user},
	}
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		sessions: &fakeSessionStore{
			sessions: map[string]*types.CareSession{
				"s1": {ID: "s1", UserID: "owner"},
			},
		},
		collaborators: &fakeCollaboratorStore{
			collaborators: map[string]map[string]bool{
				"s1": {"helper": true},
			},
		},
		entries: &fakeEntryStore{
			entries: map[int64]*types.JournalEntry{
				100: {
					ID:        100,
					SessionID: "s1",
					EntryDate: "2026-08-20",
					EntryType: types.ENTRY_TYPE_QUESTION,
					Title:     "Ask about dosage",
					Content:   "Morning or evening?",
					CreatedBy: "owner",
				},
			},
		},
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var ce *errors.CustomizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
}

func TestDeleteEntry(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	require.NoError(t, logic.DeleteEntry(100))
	assert.NotContains(t, stores.entries.entries, int64(100))
	assert.Equal(t, 1, stores.sessions.decrCalls)
}

func TestDeleteEntryMissing(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	err := logic.DeleteEntry(999)
	assertNotFound(t, err)
	assert.Equal(t, 0, stores.sessions.decrCalls)
	assert.Contains(t, stores.entries.entries, int64(100))
}

func TestDeleteEntryStranger(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("stranger", stores)

	err := logic.DeleteEntry(100)
	assertNotFound(t, err)
	assert.Equal(t, 0, stores.sessions.decrCalls)
	assert.Contains(t, stores.entries.entries, int64(100))
}

func TestDeleteEntryCollaborator(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("helper", stores)

	require.NoError(t, logic.DeleteEntry(100))
	assert.Equal(t, 1, stores.sessions.decrCalls)
}

func TestUpdateEntry(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	title := "Ask about timing"
	entryType := types.ENTRY_TYPE_APPOINTMENT
	updated, err := logic.UpdateEntry(100, types.UpdateJournalEntryArgs{
		Title:     &title,
		EntryType: &entryType,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ask about timing", updated.Title)
	assert.Equal(t, types.ENTRY_TYPE_APPOINTMENT, updated.EntryType)
	assert.Equal(t, "Morning or evening?", updated.Content)
}

func TestUpdateEntryMissing(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	_, err := logic.UpdateEntry(999, types.UpdateJournalEntryArgs{})
	assertNotFound(t, err)
}

func TestUpdateEntryInvalidArgs(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	empty := ""
	_, err := logic.UpdateEntry(100, types.UpdateJournalEntryArgs{Title: &empty})
	var ce *errors.CustomizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())

	bad := types.EntryType("DIARY")
	_, err = logic.UpdateEntry(100, types.UpdateJournalEntryArgs{EntryType: &bad})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
}

func TestCreateEntryIncrementsCount(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	entry, err := logic.CreateEntry("s1", types.CreateJournalEntryArgs{
		Title:     "MRI scheduled",
		Content:   "Friday at 9am",
		EntryType: types.ENTRY_TYPE_APPOINTMENT,
		EntryDate: "2026-08-30",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stores.sessions.incrCalls)
	assert.Contains(t, stores.entries.entries, entry.ID)
}

func TestCreateEntryUnknownSession(t *testing.T) {
	stores := newFakeStores()
	logic := newTestJournalLogic("owner", stores)

	_, err := logic.CreateEntry("missing", types.CreateJournalEntryArgs{
		Title:     "MRI scheduled",
		Content:   "Friday at 9am",
		EntryType: types.ENTRY_TYPE_APPOINTMENT,
	})
	assertNotFound(t, err)
	assert.Equal(t, 0, stores.sessions.incrCalls)
}
