package conclusion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/metrics"
)

// OpportunityStore locks and concludes opportunities inside a transaction.
type OpportunityStore interface {
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*opportunity.Opportunity, error)
	ConcludeTx(ctx context.Context, tx *sqlx.Tx, id int64, now time.Time) (bool, error)
}

// ApplicationStore is the slice of the application repository the workflow needs.
type ApplicationStore interface {
	GetByID(ctx context.Context, id int64) (*application.Application, error)
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*application.Application, error)
	ListForConclusionTx(ctx context.Context, tx *sqlx.Tx, opportunityID int64, ids []int64) ([]*application.Application, error)
	MarkConfirmedTx(ctx context.Context, tx *sqlx.Tx, a *application.Application) (bool, error)
}

// PointsCreditor credits earned points to a volunteer.
type PointsCreditor interface {
	CreditTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta ledger.TxMeta) (int, error)
}

// Service runs the conclusion and confirmation workflows. Each call is one
// transaction: precondition checks, confirmations, credits and the status
// change commit together or not at all.
type Service struct {
	opportunities OpportunityStore
	applications  ApplicationStore
	points        PointsCreditor
	tx            database.Transactor
	now           func() time.Time
}

// NewService creates conclusion service
func NewService(opportunities OpportunityStore, applications ApplicationStore, points PointsCreditor, tx database.Transactor) *Service {
	return &Service{
		opportunities: opportunities,
		applications:  applications,
		points:        points,
		tx:            tx,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source used for confirmed_at and concluded_at.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Conclude confirms the eligible applications among applicationIDs, credits
// their volunteers and closes the opportunity. Ids that are unknown, belong to
// another opportunity, are not accepted or are already confirmed are skipped.
// Ownership and state violations abort before anything is written.
func (s *Service) Conclude(ctx context.Context, opportunityID, promoterID int64, applicationIDs []int64) (*Summary, error) {
	ids := uniqueIDs(applicationIDs)

	var summary *Summary
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		opp, err := s.opportunities.GetByIDForUpdate(ctx, tx, opportunityID)
		if err != nil {
			return err
		}
		if opp == nil {
			return ErrOpportunityNotFound
		}
		if err := opp.CheckManageableBy(promoterID); err != nil {
			return err
		}

		now := s.now()
		apps, err := s.applications.ListForConclusionTx(ctx, tx, opp.ID, ids)
		if err != nil {
			return err
		}

		result := &Summary{Participants: make([]Participant, 0, len(apps))}
		for _, a := range apps {
			p, ok, err := s.confirm(ctx, tx, opp, a, now)
			if err != nil {
				return err
			}
			if ok {
				result.add(*p)
			}
		}

		concluded, err := s.opportunities.ConcludeTx(ctx, tx, opp.ID, now)
		if err != nil {
			return err
		}
		if !concluded {
			return ErrAlreadyConcluded
		}
		opp.Conclude(now)

		result.OpportunityID = opp.ID
		result.Title = opp.Title
		result.Status = opp.Status
		result.ConcludedAt = opp.ConcludedAt.Time
		summary = result
		return nil
	})
	if err != nil {
		metrics.RecordOutcome("conclusion", outcomeOf(err))
		return nil, err
	}

	metrics.RecordOutcome("conclusion", "success")
	metrics.AddPointsAwarded(summary.TotalPointsAwarded)

	log.Info().
		Int64("opportunity_id", summary.OpportunityID).
		Int64("promoter_id", promoterID).
		Int("requested", len(ids)).
		Int("participants_confirmed", summary.TotalParticipantsConfirmed).
		Int("points_awarded", summary.TotalPointsAwarded).
		Msg("Opportunity concluded")

	return summary, nil
}

// ConfirmSingle confirms one application outside a full conclusion, with the
// same ownership and state checks. Confirming an ineligible or already
// confirmed application returns it unchanged with Confirmed=false.
func (s *Service) ConfirmSingle(ctx context.Context, applicationID, promoterID int64) (*Confirmation, error) {
	current, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrApplicationNotFound
	}

	var result *Confirmation
	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		opp, err := s.opportunities.GetByIDForUpdate(ctx, tx, current.OpportunityID)
		if err != nil {
			return err
		}
		if opp == nil {
			return ErrOpportunityNotFound
		}
		if err := opp.CheckManageableBy(promoterID); err != nil {
			return err
		}

		a, err := s.applications.GetByIDForUpdate(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if a == nil || a.OpportunityID != opp.ID {
			return ErrApplicationNotFound
		}

		p, ok, err := s.confirm(ctx, tx, opp, a, s.now())
		if err != nil {
			return err
		}
		result = &Confirmation{Application: a, Confirmed: ok, Participant: p}
		return nil
	})
	if err != nil {
		metrics.RecordOutcome("confirmation", outcomeOf(err))
		return nil, err
	}

	if !result.Confirmed {
		metrics.RecordOutcome("confirmation", "skipped")
		log.Info().
			Int64("application_id", applicationID).
			Str("status", string(result.Application.Status)).
			Bool("already_confirmed", result.Application.ParticipationConfirmed).
			Msg("Application not eligible for confirmation")
		return result, nil
	}

	metrics.RecordOutcome("confirmation", "success")
	metrics.AddPointsAwarded(result.Participant.PointsAwarded)

	log.Info().
		Int64("application_id", applicationID).
		Int64("volunteer_id", result.Participant.VolunteerID).
		Int("points_awarded", result.Participant.PointsAwarded).
		Int("new_total", result.Participant.NewTotalPoints).
		Msg("Participation confirmed")

	return result, nil
}

// confirm runs the confirm-and-credit step for one locked application. It
// returns ok=false without writing when the application is not eligible.
func (s *Service) confirm(ctx context.Context, tx *sqlx.Tx, opp *opportunity.Opportunity, a *application.Application, now time.Time) (*Participant, bool, error) {
	before := *a
	if !a.ConfirmParticipation(opp.Points, now) {
		return nil, false, nil
	}

	marked, err := s.applications.MarkConfirmedTx(ctx, tx, a)
	if err != nil {
		return nil, false, err
	}
	if !marked {
		*a = before
		return nil, false, nil
	}

	total, err := s.points.CreditTx(ctx, tx, a.VolunteerID, opp.Points, ledger.TxMeta{
		RelatedEntityType: ledger.EntityApplication,
		RelatedEntityID:   a.ID,
		Description:       fmt.Sprintf("Participation in %q", opp.Title),
	})
	if err != nil {
		return nil, false, fmt.Errorf("credit volunteer %d: %w", a.VolunteerID, err)
	}

	return &Participant{
		ApplicationID:  a.ID,
		VolunteerID:    a.VolunteerID,
		VolunteerName:  a.VolunteerName,
		VolunteerEmail: a.VolunteerEmail,
		PointsAwarded:  opp.Points,
		NewTotalPoints: total,
	}, true, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrOpportunityNotFound), errors.Is(err, ErrApplicationNotFound):
		return "not_found"
	case errors.Is(err, ErrNotOpportunityOwner), errors.Is(err, ErrAlreadyConcluded):
		return "conflict"
	default:
		return "error"
	}
}
