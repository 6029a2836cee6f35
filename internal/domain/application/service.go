package application

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
)

// OpportunityStore is the slice of the opportunity repository applications need.
type OpportunityStore interface {
	GetByID(ctx context.Context, id int64) (*opportunity.Opportunity, error)
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*opportunity.Opportunity, error)
}

// VolunteerResolver finds or registers the volunteer behind an application.
type VolunteerResolver interface {
	FindOrCreate(ctx context.Context, email, name string) (*volunteer.Volunteer, error)
}

// Service handles application business logic
type Service struct {
	repo          Repository
	opportunities OpportunityStore
	volunteers    VolunteerResolver
	tx            database.Transactor
}

// NewService creates application service
func NewService(repo Repository, opportunities OpportunityStore, volunteers VolunteerResolver, tx database.Transactor) *Service {
	return &Service{
		repo:          repo,
		opportunities: opportunities,
		volunteers:    volunteers,
		tx:            tx,
	}
}

// Create registers a PENDING application of the volunteer identified by email.
// Unknown emails create a volunteer named name.
func (s *Service) Create(ctx context.Context, opportunityID int64, email, name, motivation string) (*Application, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, ErrOpportunityNotFound
	}
	if opp.IsConcluded() {
		return nil, ErrOpportunityConcluded
	}

	v, err := s.volunteers.FindOrCreate(ctx, email, name)
	if err != nil {
		return nil, err
	}

	a := &Application{
		VolunteerID:    v.ID,
		OpportunityID:  opp.ID,
		Motivation:     strings.TrimSpace(motivation),
		Status:         StatusPending,
		VolunteerName:  v.Name,
		VolunteerEmail: v.Email,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Int64("application_id", a.ID).
		Int64("opportunity_id", opp.ID).
		Int64("volunteer_id", v.ID).
		Msg("Application created")

	return a, nil
}

// UpdateStatus records the promoter's review decision. The opportunity row is
// locked first so a review cannot interleave with a conclusion.
func (s *Service) UpdateStatus(ctx context.Context, promoterID, applicationID int64, status Status) (*Application, error) {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrApplicationNotFound
	}

	var updated *Application
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

		a, err := s.repo.GetByIDForUpdate(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if a == nil {
			return ErrApplicationNotFound
		}
		if !a.CanBeUpdatedTo(status) {
			return ErrInvalidStatusTransition
		}
		if a.Status == status {
			updated = a
			return nil
		}

		ok, err := s.repo.UpdateStatusTx(ctx, tx, a.ID, a.Status, status)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStatusTransition
		}

		a.Status = status
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("application_id", updated.ID).
		Str("status", string(updated.Status)).
		Int64("promoter_id", promoterID).
		Msg("Application status updated")

	return updated, nil
}

// ListByOpportunity returns applications of an opportunity the promoter owns
func (s *Service) ListByOpportunity(ctx context.Context, promoterID, opportunityID int64, pagination *Pagination) ([]*Application, int, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, 0, err
	}
	if opp == nil {
		return nil, 0, ErrOpportunityNotFound
	}
	if !opp.IsOwnedBy(promoterID) {
		return nil, 0, ErrNotOpportunityOwner
	}
	return s.repo.ListByOpportunity(ctx, opportunityID, pagination)
}

// ListByVolunteer returns a volunteer's applications
func (s *Service) ListByVolunteer(ctx context.Context, volunteerID int64, pagination *Pagination) ([]*Application, int, error) {
	return s.repo.ListByVolunteer(ctx, volunteerID, pagination)
}
