package benefit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Filter narrows benefit listings
type Filter struct {
	Active   *bool
	Category *Category
}

// Repository defines benefit data access interface
type Repository interface {
	Create(ctx context.Context, b *Benefit) error
	GetByID(ctx context.Context, id int64) (*Benefit, error)
	// GetByIDTx reads the benefit inside tx without locking it.
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*Benefit, error)
	SetActive(ctx context.Context, id int64, active bool) (*Benefit, error)
	List(ctx context.Context, filter *Filter) ([]*Benefit, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new benefit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const benefitColumns = `id, name, description, provider, category, points_required, active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Benefit) error {
	query := `
		INSERT INTO benefits (name, description, provider, category, points_required, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		b.Name, b.Description, b.Provider, b.Category, b.PointsRequired, b.Active,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Benefit, error) {
	return r.get(ctx, r.db, id)
}

func (r *repository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*Benefit, error) {
	return r.get(ctx, tx, id)
}

func (r *repository) get(ctx context.Context, q sqlx.QueryerContext, id int64) (*Benefit, error) {
	var b Benefit
	err := sqlx.GetContext(ctx, q, &b, `SELECT `+benefitColumns+` FROM benefits WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) (*Benefit, error) {
	var b Benefit
	err := r.db.GetContext(ctx, &b, `
		UPDATE benefits SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+benefitColumns, id, active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set benefit %d active: %w", id, err)
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, filter *Filter) ([]*Benefit, error) {
	query := `SELECT ` + benefitColumns + ` FROM benefits WHERE 1=1`
	args := make([]interface{}, 0, 2)

	if filter != nil && filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter != nil && filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += ` ORDER BY points_required ASC, id ASC`

	items := make([]*Benefit, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}
