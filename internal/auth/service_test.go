package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/session"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// fakeUserStore is a map-backed UserStore with the same uniqueness
// semantics as the real users table.
type fakeUserStore struct {
	mu    sync.Mutex
	seq   uint64
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, username, passwordHash string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return model.User{}, repository.ErrUsernameExists
	}
	f.seq++
	u := model.User{ID: f.seq, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	f.users[username] = u
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) delete(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, username)
}

func newTestService() (*Service, *fakeUserStore, *session.MemoryStore) {
	users := newFakeUserStore()
	store := session.NewMemoryStore(15 * time.Minute)
	return NewService(users, store, 4), users, store
}

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()

	u, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "secret123"))

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "another-pass")
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestLoginCreatesSession(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	sid, u, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	require.NotEmpty(t, sid)

	s, err := store.Get(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "alice", s.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(ctx, "alice", "wrong")
	_, _, noUser := svc.Login(ctx, "nobody", "secret123")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	// Same sentinel, same message: nothing reveals which field was wrong.
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	sid, _, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sid))
	s, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, s)

	// Logging out twice in a row does not error.
	require.NoError(t, svc.Logout(ctx, sid))
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestCheckSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	sid, _, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	username, ok, err := svc.CheckSession(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	_, ok, err = svc.CheckSession(ctx, "bogus-token")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.CheckSession(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Logout(ctx, sid))
	_, ok, err = svc.CheckSession(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckSessionOrphanedUserFailsClosed(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	sid, _, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	// The user vanishes while the session lives on; the session must not
	// silently authenticate anymore.
	users.delete("alice")

	_, ok, err := svc.CheckSession(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	ok, err := svc.CheckPassword(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckPassword(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckPassword(ctx, "nobody", "secret123")
	require.NoError(t, err)
	assert.False(t, ok)
}
