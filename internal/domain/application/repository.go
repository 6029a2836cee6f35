package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueApplicationConstraint = "applications_volunteer_opportunity_key"

// Pagination for listing
type Pagination struct {
	Page  int
	Limit int
}

// Repository defines application data access interface
type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	// GetByIDForUpdate locks the application row for the rest of tx.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Application, error)
	// UpdateStatusTx moves an unconfirmed application from one status to another.
	// It reports false when the row no longer has status from.
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, from, to Status) (bool, error)
	// ListForConclusionTx locks the applications among ids that belong to
	// opportunityID, ordered by volunteer. Unknown and foreign ids are dropped.
	ListForConclusionTx(ctx context.Context, tx *sqlx.Tx, opportunityID int64, ids []int64) ([]*Application, error)
	// MarkConfirmedTx persists a confirmation. It reports false when the row
	// was already confirmed or is not accepted.
	MarkConfirmedTx(ctx context.Context, tx *sqlx.Tx, a *Application) (bool, error)
	ListByOpportunity(ctx context.Context, opportunityID int64, pagination *Pagination) ([]*Application, int, error)
	ListByVolunteer(ctx context.Context, volunteerID int64, pagination *Pagination) ([]*Application, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new application repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectApplication = `
	SELECT a.id, a.volunteer_id, a.opportunity_id, a.motivation, a.status,
		a.participation_confirmed, a.points_awarded, a.confirmed_at, a.created_at, a.updated_at,
		v.name AS volunteer_name, v.email AS volunteer_email
	FROM applications a
	JOIN volunteers v ON v.id = a.volunteer_id`

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications (volunteer_id, opportunity_id, motivation, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, participation_confirmed, points_awarded, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, a.VolunteerID, a.OpportunityID, a.Motivation, a.Status).
		Scan(&a.ID, &a.ParticipationConfirmed, &a.PointsAwarded, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapCreateDBError(err)
	}
	return nil
}

func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Code == "23505" && (pqErr.Constraint == "" || pqErr.Constraint == uniqueApplicationConstraint) {
		return ErrAlreadyApplied
	}
	if pqErr.Code == "23503" {
		return fmt.Errorf("%w: %w", ErrOpportunityNotFound, err)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Application, error) {
	return r.get(ctx, r.db, selectApplication+` WHERE a.id = $1`, id)
}

func (r *repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*Application, error) {
	return r.get(ctx, tx, selectApplication+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

func (r *repository) get(ctx context.Context, q sqlx.QueryerContext, query string, id int64) (*Application, error) {
	var a Application
	if err := sqlx.GetContext(ctx, q, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, from, to Status) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		UPDATE applications
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2 AND participation_confirmed = FALSE
	`, id, from, to, time.Now())
	if err != nil {
		return false, fmt.Errorf("update application %d status: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *repository) ListForConclusionTx(ctx context.Context, tx *sqlx.Tx, opportunityID int64, ids []int64) ([]*Application, error) {
	items := make([]*Application, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	query := selectApplication + `
		WHERE a.id = ANY($1) AND a.opportunity_id = $2
		ORDER BY a.volunteer_id, a.id
		FOR UPDATE OF a`
	if err := tx.SelectContext(ctx, &items, query, pq.Array(ids), opportunityID); err != nil {
		return nil, fmt.Errorf("lock applications: %w", err)
	}
	return items, nil
}

func (r *repository) MarkConfirmedTx(ctx context.Context, tx *sqlx.Tx, a *Application) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		UPDATE applications
		SET participation_confirmed = TRUE, points_awarded = $2, confirmed_at = $3, updated_at = $3
		WHERE id = $1 AND status = $4 AND participation_confirmed = FALSE
	`, a.ID, a.PointsAwarded, a.ConfirmedAt, StatusAccepted)
	if err != nil {
		return false, fmt.Errorf("confirm application %d: %w", a.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *repository) ListByOpportunity(ctx context.Context, opportunityID int64, pagination *Pagination) ([]*Application, int, error) {
	return r.list(ctx, "a.opportunity_id", opportunityID, pagination)
}

func (r *repository) ListByVolunteer(ctx context.Context, volunteerID int64, pagination *Pagination) ([]*Application, int, error) {
	return r.list(ctx, "a.volunteer_id", volunteerID, pagination)
}

// column is one of the two fixed names above, never user input.
func (r *repository) list(ctx context.Context, column string, id int64, pagination *Pagination) ([]*Application, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM applications a WHERE ` + column + ` = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, id); err != nil {
		return nil, 0, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	query := selectApplication + ` WHERE ` + column + ` = $1 ORDER BY a.created_at DESC, a.id DESC LIMIT $2 OFFSET $3`

	items := make([]*Application, 0)
	if err := r.db.SelectContext(ctx, &items, query, id, pagination.Limit, offset); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
