package opportunity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

// Filter narrows opportunity listings
type Filter struct {
	Status     *Status
	PromoterID *int64
}

// Repository defines opportunity data access interface
type Repository interface {
	Create(ctx context.Context, o *Opportunity) error
	GetByID(ctx context.Context, id int64) (*Opportunity, error)
	// GetByIDForUpdate locks the opportunity row for the rest of tx.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Opportunity, error)
	// ConcludeTx flips an OPEN opportunity to CONCLUDED; it reports false when it was not OPEN.
	ConcludeTx(ctx context.Context, tx *sqlx.Tx, id int64, now time.Time) (bool, error)
	List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Opportunity, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new opportunity repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const opportunityColumns = `id, promoter_id, title, description, points, status, concluded_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, o *Opportunity) error {
	query := `
		INSERT INTO opportunities (promoter_id, title, description, points, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, o.PromoterID, o.Title, o.Description, o.Points, o.Status).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return mapCreateDBError(err)
	}
	return nil
}

func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%w: %w", ErrInvalidPromoter, err)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Opportunity, error) {
	return r.get(ctx, r.db, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)
}

func (r *repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Opportunity, error) {
	return r.get(ctx, tx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1 FOR UPDATE`, id)
}

func (r *repository) get(ctx context.Context, q sqlx.QueryerContext, query string, id int64) (*Opportunity, error) {
	var o Opportunity
	if err := sqlx.GetContext(ctx, q, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) ConcludeTx(ctx context.Context, tx *sqlx.Tx, id int64, now time.Time) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		UPDATE opportunities
		SET status = $2, concluded_at = $3, updated_at = $3
		WHERE id = $1 AND status = $4
	`, id, StatusConcluded, now, StatusOpen)
	if err != nil {
		return false, fmt.Errorf("conclude opportunity %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Opportunity, int, error) {
	where := ` WHERE 1=1`
	args := make([]interface{}, 0, 4)
	idx := 1

	if filter != nil && filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter != nil && filter.PromoterID != nil {
		where += fmt.Sprintf(" AND promoter_id = $%d", idx)
		args = append(args, *filter.PromoterID)
		idx++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM opportunities`+where, args...); err != nil {
		return nil, 0, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	query := `SELECT ` + opportunityColumns + ` FROM opportunities` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, pagination.Limit, offset)

	items := make([]*Opportunity, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
