package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errDriver is a minimal database/sql driver whose statements all fail
// with the error message given as the DSN. It lets the duplicate-key
// mapping in Create be exercised without a live MySQL server.
type errDriver struct{}

func (errDriver) Open(msg string) (driver.Conn, error) { return &errConn{msg: msg}, nil }

type errConn struct{ msg string }

func (c *errConn) Prepare(query string) (driver.Stmt, error) { return &errStmt{msg: c.msg}, nil }
func (c *errConn) Close() error                              { return nil }
func (c *errConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

type errStmt struct{ msg string }

func (s *errStmt) Close() error  { return nil }
func (s *errStmt) NumInput() int { return -1 }
func (s *errStmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New(s.msg)
}
func (s *errStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New(s.msg)
}

func init() { sql.Register("users-err", errDriver{}) }

func TestCreateMapsDuplicateKeyToConflict(t *testing.T) {
	db, err := sql.Open("users-err",
		"Error 1062 (23000): Duplicate entry 'alice' for key 'users.uq_users_username'")
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice", "some-hash")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestCreatePassesThroughOtherErrors(t *testing.T) {
	db, err := sql.Open("users-err",
		"Error 1213 (40001): Deadlock found when trying to get lock")
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice", "some-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameExists)
	assert.Contains(t, err.Error(), "1213")
}
