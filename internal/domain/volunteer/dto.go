package volunteer

import "time"

// VolunteerResponse represents a volunteer and balance in API responses
type VolunteerResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TotalPoints int       `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
}

func VolunteerResponseFromEntity(v *Volunteer) *VolunteerResponse {
	return &VolunteerResponse{
		ID:          v.ID,
		Name:        v.Name,
		Email:       v.Email,
		TotalPoints: v.TotalPoints,
		CreatedAt:   v.CreatedAt,
	}
}
