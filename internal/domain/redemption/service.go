package redemption

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/domain/benefit"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/metrics"
)

// VolunteerStore reads and locks volunteers.
type VolunteerStore interface {
	GetByID(ctx context.Context, id int64) (*volunteer.Volunteer, error)
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*volunteer.Volunteer, error)
}

// BenefitReader loads benefits inside a transaction.
type BenefitReader interface {
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id int64) (*benefit.Benefit, error)
}

// PointsDebitor debits spent points from a volunteer.
type PointsDebitor interface {
	DebitTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta ledger.TxMeta) (int, error)
}

// Service handles redemptions and partner reporting
type Service struct {
	repo       Repository
	volunteers VolunteerStore
	benefits   BenefitReader
	points     PointsDebitor
	tx         database.Transactor
	cache      StatsCache
}

// NewService creates redemption service. A nil cache disables stats caching.
func NewService(repo Repository, volunteers VolunteerStore, benefits BenefitReader, points PointsDebitor, tx database.Transactor, cache StatsCache) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		repo:       repo,
		volunteers: volunteers,
		benefits:   benefits,
		points:     points,
		tx:         tx,
		cache:      cache,
	}
}

// Redeem spends a volunteer's points on a benefit. The volunteer row stays
// locked from the balance check until the debit commits, so concurrent
// redemptions by the same volunteer are serialized and the balance never
// goes negative. Inactive benefits are refused regardless of the balance.
func (s *Service) Redeem(ctx context.Context, volunteerID, benefitID int64) (*Result, error) {
	var result *Result
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		v, err := s.volunteers.GetByIDForUpdate(ctx, tx, volunteerID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVolunteerNotFound
		}

		b, err := s.benefits.GetByIDTx(ctx, tx, benefitID)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrBenefitNotFound
		}
		if !b.Active {
			return ErrBenefitInactive
		}
		if !ledger.Affordable(v.TotalPoints, b.PointsRequired, b.Active) {
			return &ledger.InsufficientBalanceError{Available: v.TotalPoints, Requested: b.PointsRequired}
		}

		red := &Redemption{
			VolunteerID: v.ID,
			BenefitID:   b.ID,
			PointsSpent: b.PointsRequired,
			Status:      StatusCompleted,
			BenefitName: b.Name,
			Provider:    b.Provider,
		}
		if err := s.repo.CreateTx(ctx, tx, red); err != nil {
			return err
		}

		remaining, err := s.points.DebitTx(ctx, tx, v.ID, b.PointsRequired, ledger.TxMeta{
			RelatedEntityType: ledger.EntityRedemption,
			RelatedEntityID:   red.ID,
			Description:       fmt.Sprintf("Redeemed %q from %s", b.Name, b.Provider),
		})
		if err != nil {
			return err
		}

		result = &Result{Redemption: red, RemainingPoints: remaining}
		return nil
	})
	if err != nil {
		metrics.RecordOutcome("redemption", outcomeOf(err))
		return nil, err
	}

	metrics.RecordOutcome("redemption", "success")
	metrics.AddPointsSpent(result.Redemption.PointsSpent)

	log.Info().
		Int64("redemption_id", result.Redemption.ID).
		Int64("volunteer_id", volunteerID).
		Int64("benefit_id", benefitID).
		Int("points_spent", result.Redemption.PointsSpent).
		Int("remaining_points", result.RemainingPoints).
		Msg("Benefit redeemed")

	return result, nil
}

// ListByVolunteer returns the volunteer's redemptions, newest first
func (s *Service) ListByVolunteer(ctx context.Context, volunteerID int64) ([]*Redemption, error) {
	v, err := s.volunteers.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVolunteerNotFound
	}
	return s.repo.ListByVolunteer(ctx, volunteerID)
}

// PartnerStats reports completed redemptions of the partner benefits whose
// provider contains the given term. UA benefits are never included.
func (s *Service) PartnerStats(ctx context.Context, provider string) (*PartnerStats, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil, ErrProviderRequired
	}

	// Entries are shared across spellings of the same term; echo the caller's.
	if cached, ok := s.cache.Get(ctx, provider); ok {
		metrics.RecordStatsCache(true)
		stats := *cached
		stats.Provider = provider
		return &stats, nil
	}
	metrics.RecordStatsCache(false)

	benefits, err := s.repo.PartnerBenefitStats(ctx, provider)
	if err != nil {
		return nil, err
	}
	if len(benefits) == 0 {
		return nil, ErrPartnerNotFound
	}

	ids := make([]int64, len(benefits))
	for i, b := range benefits {
		ids[i] = b.BenefitID
	}
	recent, err := s.repo.RecentForBenefits(ctx, ids, RecentLimit)
	if err != nil {
		return nil, err
	}

	stats := newPartnerStats(provider, benefits, recent)
	s.cache.Set(ctx, provider, stats)
	return stats, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrVolunteerNotFound), errors.Is(err, ErrBenefitNotFound):
		return "not_found"
	case errors.Is(err, ErrBenefitInactive), errors.Is(err, ErrInsufficientPoints):
		return "conflict"
	default:
		return "error"
	}
}
