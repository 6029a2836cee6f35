package benefit

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service handles benefit catalogue logic
type Service struct {
	repo Repository
}

// NewService creates benefit service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a benefit to the catalogue. New benefits are active unless the request says otherwise.
func (s *Service) Create(ctx context.Context, req *CreateBenefitRequest) (*Benefit, error) {
	b := &Benefit{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Provider:       strings.TrimSpace(req.Provider),
		Category:       Category(req.Category),
		PointsRequired: *req.PointsRequired,
		Active:         true,
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Int64("benefit_id", b.ID).
		Str("provider", b.Provider).
		Str("category", string(b.Category)).
		Int("points_required", b.PointsRequired).
		Msg("Benefit created")

	return b, nil
}

// GetByID returns benefit by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Benefit, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBenefitNotFound
	}
	return b, nil
}

// SetActive activates or deactivates a benefit
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*Benefit, error) {
	b, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBenefitNotFound
	}

	log.Info().Int64("benefit_id", id).Bool("active", active).Msg("Benefit availability changed")
	return b, nil
}

// List returns benefits matching filter
func (s *Service) List(ctx context.Context, filter *Filter) ([]*Benefit, error) {
	return s.repo.List(ctx, filter)
}
