package promoter

import "time"

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returned after login/register
type AuthResponse struct {
	Promoter    PromoterResponse `json:"promoter"`
	AccessToken string           `json:"access_token"`
	ExpiresIn   int              `json:"expires_in"`
}

// PromoterResponse represents promoter in API response
type PromoterResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func PromoterResponseFromEntity(p *Promoter) PromoterResponse {
	return PromoterResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}
