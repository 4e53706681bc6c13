// Package session maps opaque tokens to server-held session records and
// enforces their expiry. The backing is pluggable: an in-process map, a
// durable MySQL table, or Redis with native TTL. All backings share the
// same contract: a Get must never return an expired session as valid,
// regardless of whether a sweep has run, and Destroy is idempotent.
package session

import (
	"context"
	"time"

	"github.com/iliyamo/user-auth-service/internal/utils"
)

// Session is a server-held record proving a prior successful
// authentication. The Username field is a back-reference for lookup, not
// ownership: a user may hold several live sessions at once.
type Session struct {
	ID        string    `json:"sid"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store is the session backing contract.
type Store interface {
	// Create generates an unguessable token and writes a record expiring
	// maxAge from now. Concurrent creates for one username are independent.
	Create(ctx context.Context, username string) (string, error)
	// Get returns the session for the token, or (nil, nil) when the token
	// is unknown or the record has expired. Backings without native TTL
	// purge expired records lazily here.
	Get(ctx context.Context, sid string) (*Session, error)
	// Destroy removes the session. Destroying an absent session is not an
	// error.
	Destroy(ctx context.Context, sid string) error
	// DeleteExpired purges all expired records. The periodic sweeper calls
	// it; backings with native TTL may treat it as a no-op.
	DeleteExpired(ctx context.Context) error
}

// newSession builds a fresh record with a random token.
func newSession(username string, maxAge time.Duration) (*Session, error) {
	sid, err := utils.NewSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Session{
		ID:        sid,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(maxAge),
	}, nil
}
