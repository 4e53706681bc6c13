// Package auth implements the authentication core: registration, login,
// logout, and the predicates the access gate consults. Credential
// presentation (cookie vs header) and session backing are chosen once at
// startup; the service itself is written against the Store and UserStore
// abstractions and never branches on the deployment strategy.
package auth

import (
	"context"
	"errors"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/session"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password. Callers must not distinguish the two; a single message avoids
// username enumeration through differing errors.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the service needs.
// *repository.UserRepo satisfies it; tests substitute a map-backed fake.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// Service orchestrates the credential hasher, user store and session store.
type Service struct {
	users    UserStore
	sessions session.Store
	cost     int
}

// NewService wires the service with the configured bcrypt cost.
func NewService(users UserStore, sessions session.Store, cost int) *Service {
	return &Service{users: users, sessions: sessions, cost: cost}
}

// Register hashes the password and persists the user. A duplicate username
// surfaces as repository.ErrUsernameExists straight from the store's
// uniqueness constraint; the service performs no pre-check, so two racing
// registrations resolve to one success and one conflict.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return model.User{}, err
	}
	return s.users.Create(ctx, username, hash)
}

// Login verifies the credentials and creates a session on success. A
// compare still runs when the user lookup failed, so the two failure
// cases are harder to tell apart by timing; both collapse to
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a compare against an empty hash; it always fails.
			utils.VerifyPassword("", password)
			return "", model.User{}, ErrInvalidCredentials
		}
		return "", model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return "", model.User{}, ErrInvalidCredentials
	}
	sid, err := s.sessions.Create(ctx, u.Username)
	if err != nil {
		return "", model.User{}, err
	}
	return sid, u, nil
}

// Logout destroys the session. An already-absent session is a success;
// only a store failure is reported.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sid)
}

// IssueSession creates a session for an already-authenticated user, used
// by the session-on-register flow.
func (s *Service) IssueSession(ctx context.Context, username string) (string, error) {
	return s.sessions.Create(ctx, username)
}

// CheckSession is the cookie-strategy predicate: present and unexpired.
// It is read-only except for the store's lazy expiry cleanup. A session
// whose user has since disappeared fails closed.
func (s *Service) CheckSession(ctx context.Context, sid string) (string, bool, error) {
	if sid == "" {
		return "", false, nil
	}
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return "", false, err
	}
	if sess == nil {
		return "", false, nil
	}
	if _, err := s.users.GetByUsername(ctx, sess.Username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return sess.Username, true, nil
}

// CheckPassword is the header-strategy predicate: the full verify runs
// against the user store on every call, with no caching. Expensive but
// stateless.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (bool, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.VerifyPassword("", password)
			return false, nil
		}
		return false, err
	}
	return utils.VerifyPassword(u.PasswordHash, password), nil
}

// ListUsers backs the protected listing endpoint.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
