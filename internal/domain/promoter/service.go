package promoter

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/jwt"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/password"
)

// Service handles promoter registration and login
type Service struct {
	repo       Repository
	jwtService *jwt.Service
}

// NewService creates promoter service
func NewService(repo Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwtService: jwtService}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates new promoter account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, wrapRegisterError("lookup", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, wrapRegisterError("hash", err)
	}

	p := &Promoter{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if isEmailAlreadyExistsError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, wrapRegisterError("create", err)
	}

	log.Info().Int64("promoter_id", p.ID).Msg("Promoter registered")
	return s.issueToken(p)
}

// Login authenticates promoter
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	p, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(p)
}

// GetByID returns the authenticated promoter
func (s *Service) GetByID(ctx context.Context, id int64) (*Promoter, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPromoterNotFound
	}
	return p, nil
}

func (s *Service) issueToken(p *Promoter) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(p.ID, jwt.RolePromoter)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Promoter:    PromoterResponseFromEntity(p),
		AccessToken: token,
		ExpiresIn:   int(s.jwtService.GetAccessTTL().Seconds()),
	}, nil
}
