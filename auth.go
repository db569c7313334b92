package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

// --- Persisted session state ---

// StateStore is the persistence port for the cached identity. The file
// implementation stands in for the browser's local storage; tests swap
// in an in-memory one.
type StateStore interface {
	Load() (*User, bool, error)
	Save(user *User) error
	Clear() error
}

// persistedState is the on-disk shape: the serialized user record plus
// the authenticated flag, mirroring the two entries the original client
// kept.
type persistedState struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"isAuthenticated"`
}

type fileStateStore struct {
	path string
}

// NewFileStateStore persists the identity as JSON under the config dir.
func NewFileStateStore(path string) StateStore {
	return &fileStateStore{path: path}
}

func (f *fileStateStore) Load() (*User, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false, err
	}
	if st.User == nil || !st.Authenticated {
		return nil, false, nil
	}
	return st.User, true, nil
}

func (f *fileStateStore) Save(user *User) error {
	data, err := json.MarshalIndent(persistedState{User: user, Authenticated: true}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *fileStateStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// --- Auth store ---

type authState int

const (
	authAnonymous authState = iota
	authPending
	authSignedIn
)

// AuthStore holds the current identity and gates which top-level view
// mounts. On construction it restores synchronously from the state
// store with no network round trip, trading staleness for instant load.
type AuthStore struct {
	state authState
	user  *User
	store StateStore
}

func NewAuthStore(store StateStore) *AuthStore {
	a := &AuthStore{store: store}
	if user, ok, err := store.Load(); err == nil && ok {
		a.user = user
		a.state = authSignedIn
	}
	return a
}

func (a *AuthStore) State() authState    { return a.state }
func (a *AuthStore) User() *User         { return a.user }
func (a *AuthStore) Authenticated() bool { return a.state == authSignedIn }
func (a *AuthStore) Pending() bool       { return a.state == authPending }

// Begin marks a login/signup attempt in flight.
func (a *AuthStore) Begin() {
	if a.state == authAnonymous {
		a.state = authPending
	}
}

// Succeed installs the identity and persists it. A persistence failure
// does not block the session; it only costs the next-boot restore.
func (a *AuthStore) Succeed(user *User) {
	a.user = user
	a.state = authSignedIn
	_ = a.store.Save(user)
}

// Fail returns to the anonymous state.
func (a *AuthStore) Fail() {
	a.user = nil
	a.state = authAnonymous
}

// Logout clears the identity and the persisted copy.
func (a *AuthStore) Logout() {
	a.user = nil
	a.state = authAnonymous
	_ = a.store.Clear()
}

// UserID returns the signed-in user's id, or 0.
func (a *AuthStore) UserID() int {
	if a.user == nil {
		return 0
	}
	return a.user.ID
}

// --- Secrets ---

// SecretStore keeps the saved connection profile's password out of the
// config file. Backed by the OS keyring; absence of a usable keyring
// degrades to empty reads, never an error surfaced to the user.
type SecretStore interface {
	Get(key string) string
	Set(key, value string) error
	Delete(key string)
}

const keyringService = "querygenie"

type keyringStore struct {
	ring keyring.Keyring
}

// OpenSecretStore opens the platform keyring. The nil store returned on
// failure is safe to use everywhere.
func OpenSecretStore() SecretStore {
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return nopSecretStore{}
	}
	return &keyringStore{ring: ring}
}

func (k *keyringStore) Get(key string) string {
	item, err := k.ring.Get(key)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

func (k *keyringStore) Set(key, value string) error {
	return k.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (k *keyringStore) Delete(key string) {
	_ = k.ring.Remove(key)
}

type nopSecretStore struct{}

func (nopSecretStore) Get(string) string        { return "" }
func (nopSecretStore) Set(string, string) error { return nil }
func (nopSecretStore) Delete(string)            {}
