package redemption

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/ua-volunteer/volunteer-api/internal/domain/benefit"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
)

// TestConcurrentRedemptionsNeverOverdraw runs against a real database:
// TEST_DATABASE_URL=postgres://... go test ./internal/domain/redemption -run Concurrent
func TestConcurrentRedemptionsNeverOverdraw(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.MigrateUp(db))

	ctx := context.Background()
	volunteers := volunteer.NewRepository(db)
	v := &volunteer.Volunteer{Name: "Race", Email: "race-redemption@example.com"}
	_, err = volunteers.Create(ctx, v)
	require.NoError(t, err)
	stored, err := volunteers.GetByEmail(ctx, v.Email)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `UPDATE volunteers SET total_points = 300 WHERE id = $1`, stored.ID)
	require.NoError(t, err)

	benefits := benefit.NewRepository(db)
	b := &benefit.Benefit{Name: "Voucher", Provider: "Race Partner", Category: benefit.CategoryPartner, PointsRequired: 100, Active: true}
	require.NoError(t, benefits.Create(ctx, b))

	svc := NewService(NewRepository(db), volunteers, benefits, ledger.NewRepository(db), database.NewTxManager(db), nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Redeem(ctx, stored.ID, b.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 3, succeeded)
	after, err := volunteers.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, 0, after.TotalPoints)
}
