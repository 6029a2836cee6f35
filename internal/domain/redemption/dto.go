package redemption

import "time"

// RedeemRequest for POST /volunteers/{id}/redemptions
type RedeemRequest struct {
	BenefitID int64 `json:"benefit_id" validate:"required,gt=0"`
}

// RedemptionResponse represents redemption in API response
type RedemptionResponse struct {
	ID          int64     `json:"id"`
	VolunteerID int64     `json:"volunteer_id"`
	BenefitID   int64     `json:"benefit_id"`
	BenefitName string    `json:"benefit_name"`
	Provider    string    `json:"provider"`
	PointsSpent int       `json:"points_spent"`
	Status      Status    `json:"status"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// RedeemResponse is returned by a successful redemption
type RedeemResponse struct {
	Redemption      *RedemptionResponse `json:"redemption"`
	RemainingPoints int                 `json:"remaining_points"`
}

func RedemptionResponseFromEntity(r *Redemption) *RedemptionResponse {
	return &RedemptionResponse{
		ID:          r.ID,
		VolunteerID: r.VolunteerID,
		BenefitID:   r.BenefitID,
		BenefitName: r.BenefitName,
		Provider:    r.Provider,
		PointsSpent: r.PointsSpent,
		Status:      r.Status,
		RedeemedAt:  r.RedeemedAt,
	}
}
