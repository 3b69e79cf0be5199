package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakform/storefront/internal/models"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	return s
}

func TestLoadSessionEmpty(t *testing.T) {
	s := openTemp(t)

	_, _, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoadSession(t *testing.T) {
	s := openTemp(t)
	user := models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}

	require.NoError(t, s.SaveSession("tok-123", user))

	token, loaded, ok, err := s.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, user, loaded)
}

func TestSaveSessionOverwrites(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.SaveSession("old", models.User{ID: "u1"}))
	require.NoError(t, s.SaveSession("new", models.User{ID: "u2"}))

	token, user, ok, err := s.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", token)
	assert.Equal(t, "u2", user.ID)
}

func TestClearSession(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.SaveSession("tok", models.User{ID: "u1"}))

	require.NoError(t, s.ClearSession())

	_, _, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMalformedRowPurged(t *testing.T) {
	s := openTemp(t)
	row := sessionRow{ID: 1, Token: "tok", UserJSON: "{not json", UpdatedAt: time.Now()}
	require.NoError(t, s.db.Save(&row).Error)

	_, _, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok, "malformed session must read as absent")

	var count int64
	s.db.Model(&sessionRow{}).Count(&count)
	assert.Zero(t, count, "malformed session must be purged")
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSession("tok", models.User{ID: "u1"}))

	s2, err := Open(path)
	require.NoError(t, err)
	token, _, ok, err := s2.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}
