package redemption

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines redemption data access interface
type Repository interface {
	// CreateTx inserts a COMPLETED redemption and fills ID and RedeemedAt.
	CreateTx(ctx context.Context, tx *sqlx.Tx, r *Redemption) error
	ListByVolunteer(ctx context.Context, volunteerID int64) ([]*Redemption, error)
	// PartnerBenefitStats aggregates completed redemptions for non-UA benefits
	// whose provider contains the term, case-insensitively.
	PartnerBenefitStats(ctx context.Context, providerTerm string) ([]BenefitStats, error)
	RecentForBenefits(ctx context.Context, benefitIDs []int64, limit int) ([]RecentRedemption, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new redemption repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, red *Redemption) error {
	query := `
		INSERT INTO redemptions (volunteer_id, benefit_id, points_spent, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, redeemed_at
	`
	err := tx.QueryRowxContext(ctx, query, red.VolunteerID, red.BenefitID, red.PointsSpent, red.Status).
		Scan(&red.ID, &red.RedeemedAt)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

func (r *repository) ListByVolunteer(ctx context.Context, volunteerID int64) ([]*Redemption, error) {
	query := `
		SELECT r.id, r.volunteer_id, r.benefit_id, r.points_spent, r.status, r.redeemed_at,
			b.name AS benefit_name, b.provider
		FROM redemptions r
		JOIN benefits b ON b.id = r.benefit_id
		WHERE r.volunteer_id = $1
		ORDER BY r.redeemed_at DESC, r.id DESC
	`
	items := make([]*Redemption, 0)
	if err := r.db.SelectContext(ctx, &items, query, volunteerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) PartnerBenefitStats(ctx context.Context, providerTerm string) ([]BenefitStats, error) {
	query := `
		SELECT b.id AS benefit_id, b.name, b.provider, b.points_required, b.active,
			COUNT(r.id) AS redemption_count,
			COALESCE(SUM(r.points_spent), 0) AS points_redeemed
		FROM benefits b
		LEFT JOIN redemptions r ON r.benefit_id = b.id AND r.status = $3
		WHERE b.provider ILIKE '%' || $1 || '%' ESCAPE '\' AND b.category <> $2
		GROUP BY b.id
		ORDER BY b.id
	`
	items := make([]BenefitStats, 0)
	err := r.db.SelectContext(ctx, &items, query, escapeLike(providerTerm), "UA", StatusCompleted)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) RecentForBenefits(ctx context.Context, benefitIDs []int64, limit int) ([]RecentRedemption, error) {
	items := make([]RecentRedemption, 0)
	if len(benefitIDs) == 0 {
		return items, nil
	}

	query := `
		SELECT r.id AS redemption_id, r.benefit_id, b.name AS benefit_name,
			r.volunteer_id, v.name AS volunteer_name, r.points_spent, r.redeemed_at
		FROM redemptions r
		JOIN benefits b ON b.id = r.benefit_id
		JOIN volunteers v ON v.id = r.volunteer_id
		WHERE r.benefit_id = ANY($1) AND r.status = $2
		ORDER BY r.redeemed_at DESC, r.id DESC
		LIMIT $3
	`
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(benefitIDs), StatusCompleted, limit); err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
