package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockManager(t *testing.T) (*TxManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTxManager(sqlx.NewDb(db, "sqlmock")), mock
}

func TestWithinTxCommits(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE volunteers`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.WithinTx(context.Background(), func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`UPDATE volunteers SET total_points = total_points + 1 WHERE id = 1`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	m, mock := newMockManager(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.WithinTx(context.Background(), func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = m.WithinTx(context.Background(), func(tx *sqlx.Tx) error { panic("boom") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxBeginFailure(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	called := false
	err := m.WithinTx(context.Background(), func(tx *sqlx.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
