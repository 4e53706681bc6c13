package session

import (
	"context"
	"database/sql"
	"time"
)

// MySQLStore persists sessions in a 'sessions' table so they survive
// restarts and can be shared between processes. The schema is created on
// first use if absent.
type MySQLStore struct {
	db     *sql.DB
	maxAge time.Duration
}

// NewMySQLStore ensures the sessions schema exists and returns a durable
// store issuing sessions that live for maxAge.
func NewMySQLStore(ctx context.Context, db *sql.DB, maxAge time.Duration) (*MySQLStore, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			sid        VARCHAR(128) NOT NULL,
			username   VARCHAR(190) NOT NULL,
			created_at DATETIME     NOT NULL,
			expires_at DATETIME     NOT NULL,
			PRIMARY KEY (sid),
			KEY idx_sessions_expires_at (expires_at)
		)`)
	if err != nil {
		return nil, err
	}
	return &MySQLStore{db: db, maxAge: maxAge}, nil
}

var _ Store = (*MySQLStore)(nil)

// Create generates a token and inserts the session row.
func (m *MySQLStore) Create(ctx context.Context, username string) (string, error) {
	s, err := newSession(username, m.maxAge)
	if err != nil {
		return "", err
	}
	_, err = m.db.ExecContext(ctx,
		"INSERT INTO sessions (sid, username, created_at, expires_at) VALUES (?,?,?,?)",
		s.ID, s.Username, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// Get returns the session or (nil, nil) when the row is missing or
// expired. An expired row is deleted on read; the periodic sweep handles
// rows nobody reads again.
func (m *MySQLStore) Get(ctx context.Context, sid string) (*Session, error) {
	var s Session
	err := m.db.QueryRowContext(ctx,
		"SELECT sid, username, created_at, expires_at FROM sessions WHERE sid=? LIMIT 1",
		sid).Scan(&s.ID, &s.Username, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(time.Now().UTC()) {
		_ = m.Destroy(ctx, sid)
		return nil, nil
	}
	return &s, nil
}

// Destroy deletes the row; deleting an absent row is not an error.
func (m *MySQLStore) Destroy(ctx context.Context, sid string) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM sessions WHERE sid=?", sid)
	return err
}

// DeleteExpired purges all rows past their expiry.
func (m *MySQLStore) DeleteExpired(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	return err
}
