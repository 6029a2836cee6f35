package benefit

import "time"

// CreateBenefitRequest for POST /benefits
type CreateBenefitRequest struct {
	Name           string `json:"name" validate:"required,notblank,max=200"`
	Description    string `json:"description" validate:"max=5000"`
	Provider       string `json:"provider" validate:"required,notblank,max=200"`
	Category       string `json:"category" validate:"required,benefit_category"`
	PointsRequired *int   `json:"points_required" validate:"required,gte=0,lte=1000000"`
	Active         *bool  `json:"active"`
}

// SetActiveRequest for PATCH /benefits/{id}/active
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// BenefitResponse represents benefit in API response
type BenefitResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Provider       string    `json:"provider"`
	Category       Category  `json:"category"`
	PointsRequired int       `json:"points_required"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func BenefitResponseFromEntity(b *Benefit) *BenefitResponse {
	return &BenefitResponse{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		Provider:       b.Provider,
		Category:       b.Category,
		PointsRequired: b.PointsRequired,
		Active:         b.Active,
		CreatedAt:      b.CreatedAt,
	}
}
