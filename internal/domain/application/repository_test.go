package application

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationCols = []string{
	"id", "volunteer_id", "opportunity_id", "motivation", "status",
	"participation_confirmed", "points_awarded", "confirmed_at", "created_at", "updated_at",
	"volunteer_name", "volunteer_email",
}

func TestMapCreateDBErrorDuplicate(t *testing.T) {
	err := mapCreateDBError(&pq.Error{Code: "23505", Constraint: uniqueApplicationConstraint})
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	err = mapCreateDBError(&pq.Error{Code: "23503", Constraint: "applications_opportunity_id_fkey"})
	assert.ErrorIs(t, err, ErrOpportunityNotFound)
}

func TestListForConclusionTxFiltersByOpportunityAndLocks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE a.id = ANY\(\$1\) AND a.opportunity_id = \$2 ORDER BY a.volunteer_id, a.id FOR UPDATE OF a`).
		WithArgs(sqlmock.AnyArg(), int64(4)).
		WillReturnRows(sqlmock.NewRows(applicationCols).
			AddRow(11, 3, 4, "", "ACCEPTED", false, 0, nil, now, now, "Ana", "ana@example.com"))
	mock.ExpectRollback()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	items, err := repo.ListForConclusionTx(context.Background(), tx, 4, []int64{11, 11, 999})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ana", items[0].VolunteerName)
	assert.True(t, items[0].CanConfirm())
	require.NoError(t, tx.Rollback())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForConclusionTxEmptyIDsSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))
	items, err := repo.ListForConclusionTx(context.Background(), nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkConfirmedTxIsGuarded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	a := &Application{ID: 11, Status: StatusAccepted}
	a.ConfirmParticipation(150, time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(`WHERE id = \$1 AND status = \$4 AND participation_confirmed = FALSE`).
		WithArgs(int64(11), 150, sqlmock.AnyArg(), "ACCEPTED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	ok, err := repo.MarkConfirmedTx(context.Background(), tx, a)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, tx.Rollback())

	require.NoError(t, mock.ExpectationsWereMet())
}
