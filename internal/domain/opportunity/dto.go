package opportunity

import "time"

// CreateOpportunityRequest for POST /opportunities
type CreateOpportunityRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Points      *int   `json:"points" validate:"required,gte=0,lte=1000000"`
}

// OpportunityResponse represents opportunity in API response
type OpportunityResponse struct {
	ID          int64      `json:"id"`
	PromoterID  int64      `json:"promoter_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Status      Status     `json:"status"`
	ConcludedAt *time.Time `json:"concluded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func OpportunityResponseFromEntity(o *Opportunity) *OpportunityResponse {
	resp := &OpportunityResponse{
		ID:          o.ID,
		PromoterID:  o.PromoterID,
		Title:       o.Title,
		Description: o.Description,
		Points:      o.Points,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
	if o.ConcludedAt.Valid {
		resp.ConcludedAt = &o.ConcludedAt.Time
	}
	return resp
}
