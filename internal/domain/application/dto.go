package application

import "time"

// CreateApplicationRequest for POST /opportunities/{id}/applications
type CreateApplicationRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Name       string `json:"name" validate:"max=200"`
	Motivation string `json:"motivation" validate:"max=2000"`
}

// UpdateStatusRequest for PATCH /applications/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

// ApplicationResponse represents application in API response
type ApplicationResponse struct {
	ID                     int64      `json:"id"`
	OpportunityID          int64      `json:"opportunity_id"`
	VolunteerID            int64      `json:"volunteer_id"`
	VolunteerName          string     `json:"volunteer_name,omitempty"`
	VolunteerEmail         string     `json:"volunteer_email,omitempty"`
	Motivation             string     `json:"motivation,omitempty"`
	Status                 Status     `json:"status"`
	ParticipationConfirmed bool       `json:"participation_confirmed"`
	PointsAwarded          int        `json:"points_awarded"`
	ConfirmedAt            *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

func ApplicationResponseFromEntity(a *Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:                     a.ID,
		OpportunityID:          a.OpportunityID,
		VolunteerID:            a.VolunteerID,
		VolunteerName:          a.VolunteerName,
		VolunteerEmail:         a.VolunteerEmail,
		Motivation:             a.Motivation,
		Status:                 a.Status,
		ParticipationConfirmed: a.ParticipationConfirmed,
		PointsAwarded:          a.PointsAwarded,
		CreatedAt:              a.CreatedAt,
	}
	if a.ConfirmedAt.Valid {
		resp.ConfirmedAt = &a.ConfirmedAt.Time
	}
	return resp
}
