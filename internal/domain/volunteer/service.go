package volunteer

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service handles volunteer business logic
type Service struct {
	repo Repository
}

// NewService creates volunteer service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByID returns a volunteer with the current point balance
func (s *Service) GetByID(ctx context.Context, id int64) (*Volunteer, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVolunteerNotFound
	}
	return v, nil
}

// FindOrCreate returns the volunteer registered under email, creating one named
// name when none exists. Concurrent first applications with the same email
// resolve to the same row.
func (s *Service) FindOrCreate(ctx context.Context, email, name string) (*Volunteer, error) {
	email = NormalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	v := &Volunteer{Name: name, Email: email}
	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info().Int64("volunteer_id", v.ID).Msg("Volunteer registered")
		return v, nil
	}

	// Lost the race to a concurrent insert.
	existing, err = s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVolunteerNotFound
	}
	return existing, nil
}
