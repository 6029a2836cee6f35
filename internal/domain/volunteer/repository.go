package volunteer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines volunteer data access interface
type Repository interface {
	// Create inserts v unless the email is taken; it reports whether a row was created.
	Create(ctx context.Context, v *Volunteer) (bool, error)
	GetByID(ctx context.Context, id int64) (*Volunteer, error)
	GetByEmail(ctx context.Context, email string) (*Volunteer, error)
	// GetByIDForUpdate locks the volunteer row for the rest of tx.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Volunteer, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new volunteer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const volunteerColumns = `id, name, email, total_points, created_at, updated_at`

func (r *repository) Create(ctx context.Context, v *Volunteer) (bool, error) {
	query := `
		INSERT INTO volunteers (name, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + volunteerColumns

	err := r.db.QueryRowxContext(ctx, query, v.Name, v.Email).StructScan(v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create volunteer: %w", err)
	}
	return true, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Volunteer, error) {
	return r.get(ctx, r.db, `SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1`, id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Volunteer, error) {
	return r.get(ctx, r.db, `SELECT `+volunteerColumns+` FROM volunteers WHERE email = $1`, email)
}

func (r *repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Volunteer, error) {
	return r.get(ctx, tx, `SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1 FOR UPDATE`, id)
}

func (r *repository) get(ctx context.Context, q sqlx.QueryerContext, query string, arg interface{}) (*Volunteer, error) {
	var v Volunteer
	if err := sqlx.GetContext(ctx, q, &v, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
