package opportunity

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service handles opportunity business logic
type Service struct {
	repo Repository
}

// NewService creates opportunity service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates an OPEN opportunity owned by promoterID. Points are fixed from here on.
func (s *Service) Create(ctx context.Context, promoterID int64, req *CreateOpportunityRequest) (*Opportunity, error) {
	o := &Opportunity{
		PromoterID:  promoterID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Points:      *req.Points,
		Status:      StatusOpen,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info().
		Int64("opportunity_id", o.ID).
		Int64("promoter_id", promoterID).
		Int("points", o.Points).
		Msg("Opportunity created")

	return o, nil
}

// GetByID returns opportunity by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Opportunity, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOpportunityNotFound
	}
	return o, nil
}

// List returns opportunities with filters
func (s *Service) List(ctx context.Context, filter *Filter, pagination *Pagination) ([]*Opportunity, int, error) {
	return s.repo.List(ctx, filter, pagination)
}
