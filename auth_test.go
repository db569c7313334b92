package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStateStore struct {
	user *User
	ok   bool
}

func (m *memStateStore) Load() (*User, bool, error) { return m.user, m.ok, nil }
func (m *memStateStore) Save(u *User) error         { m.user, m.ok = u, true; return nil }
func (m *memStateStore) Clear() error               { m.user, m.ok = nil, false; return nil }

func TestFileStateStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStateStore(path)

	user, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)

	require.NoError(t, store.Save(&User{ID: 1, Username: "ada"}))
	user, ok, err = store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ada", user.Username)

	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestFileStateStoreIgnoresUnauthenticatedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user": {"id": 1}, "isAuthenticated": false}`), 0600))

	_, ok, err := NewFileStateStore(path).Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthStoreRestoresOnBoot(t *testing.T) {
	store := &memStateStore{user: &User{ID: 5, Username: "ada"}, ok: true}
	a := NewAuthStore(store)
	assert.True(t, a.Authenticated())
	assert.Equal(t, 5, a.UserID())
}

func TestAuthStoreLifecycle(t *testing.T) {
	store := &memStateStore{}
	a := NewAuthStore(store)
	assert.False(t, a.Authenticated())
	assert.Equal(t, 0, a.UserID())

	a.Begin()
	assert.True(t, a.Pending())

	a.Fail()
	assert.False(t, a.Authenticated())

	a.Succeed(&User{ID: 9})
	assert.True(t, a.Authenticated())
	assert.True(t, store.ok, "success must persist the identity")

	a.Logout()
	assert.False(t, a.Authenticated())
	assert.False(t, store.ok, "logout must clear the persisted identity")
}

func TestNopSecretStore(t *testing.T) {
	var s SecretStore = nopSecretStore{}
	require.NoError(t, s.Set("k", "v"))
	assert.Equal(t, "", s.Get("k"))
	s.Delete("k")
}
