package benefit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var benefitCols = []string{"id", "name", "description", "provider", "category", "points_required", "active", "created_at", "updated_at"}

func TestListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))
	active := true
	category := CategoryPartner

	mock.ExpectQuery(`FROM benefits WHERE 1=1 AND active = \$1 AND category = \$2 ORDER BY points_required ASC, id ASC`).
		WithArgs(true, "PARTNER").
		WillReturnRows(sqlmock.NewRows(benefitCols).
			AddRow(1, "Coffee", "", "Lviv Coffee", "PARTNER", 150, true, time.Now(), time.Now()))

	items, err := repo.List(context.Background(), &Filter{Active: &active, Category: &category})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lviv Coffee", items[0].Provider)
	assert.True(t, items[0].IsPartner())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveMissingBenefit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery(`UPDATE benefits SET active = \$2`).
		WithArgs(int64(9), false).
		WillReturnRows(sqlmock.NewRows(benefitCols))

	b, err := repo.SetActive(context.Background(), 9, false)
	require.NoError(t, err)
	assert.Nil(t, b)
	require.NoError(t, mock.ExpectationsWereMet())
}
