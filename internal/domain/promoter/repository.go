package promoter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines promoter data access interface
type Repository interface {
	Create(ctx context.Context, p *Promoter) error
	GetByID(ctx context.Context, id int64) (*Promoter, error)
	GetByEmail(ctx context.Context, email string) (*Promoter, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new promoter repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Promoter) error {
	query := `
		INSERT INTO promoters (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query, p.Name, p.Email, p.PasswordHash).Scan(&p.ID, &p.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Promoter, error) {
	var p Promoter
	err := r.db.GetContext(ctx, &p, `SELECT id, name, email, password_hash, created_at FROM promoters WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Promoter, error) {
	var p Promoter
	err := r.db.GetContext(ctx, &p, `SELECT id, name, email, password_hash, created_at FROM promoters WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
