package opportunity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcludeTxGuardsOnOpenStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE opportunities SET status = \$2, concluded_at = \$3, updated_at = \$3 WHERE id = \$1 AND status = \$4`).
		WithArgs(int64(4), "CONCLUDED", now, "OPEN").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	require.NoError(t, err)

	ok, err := repo.ConcludeTx(context.Background(), tx, 4, now)
	require.NoError(t, err)
	assert.False(t, ok, "no row updated means it was already concluded")
	require.NoError(t, tx.Rollback())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUpdateLocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	cols := []string{"id", "promoter_id", "title", "description", "points", "status", "concluded_at", "created_at", "updated_at"}
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM opportunities WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(4, 10, "Cleanup", "", 150, "OPEN", nil, time.Now(), time.Now()))
	mock.ExpectRollback()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	o, err := repo.GetByIDForUpdate(context.Background(), tx, 4)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 150, o.Points)
	assert.True(t, o.IsOpen())
	require.NoError(t, tx.Rollback())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapCreateDBError(t *testing.T) {
	mapped := mapCreateDBError(&pq.Error{Code: "23503", Constraint: "opportunities_promoter_id_fkey"})
	if !errors.Is(mapped, ErrInvalidPromoter) {
		t.Fatalf("expected ErrInvalidPromoter, got %v", mapped)
	}
	plain := errors.New("boom")
	if mapCreateDBError(plain) != plain {
		t.Fatal("non-pq errors pass through")
	}
}
