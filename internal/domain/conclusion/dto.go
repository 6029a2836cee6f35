package conclusion

import (
	"time"

	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
)

// ConcludeRequest for POST /opportunities/{id}/conclude
type ConcludeRequest struct {
	ApplicationIDs []int64 `json:"application_ids" validate:"max=1000,dive,gt=0"`
}

// ParticipantResponse is one credited volunteer in a conclusion summary
type ParticipantResponse struct {
	ApplicationID  int64  `json:"application_id"`
	VolunteerID    int64  `json:"volunteer_id"`
	VolunteerName  string `json:"volunteer_name"`
	VolunteerEmail string `json:"volunteer_email"`
	PointsAwarded  int    `json:"points_awarded"`
	NewTotalPoints int    `json:"new_total_points"`
}

// SummaryResponse for POST /opportunities/{id}/conclude
type SummaryResponse struct {
	OpportunityID              int64                 `json:"opportunity_id"`
	Title                      string                `json:"title"`
	Status                     opportunity.Status    `json:"status"`
	ConcludedAt                time.Time             `json:"concluded_at"`
	TotalParticipantsConfirmed int                   `json:"total_participants_confirmed"`
	TotalPointsAwarded         int                   `json:"total_points_awarded"`
	Participants               []ParticipantResponse `json:"participants"`
}

// ConfirmationResponse for POST /applications/{id}/confirm
type ConfirmationResponse struct {
	Confirmed      bool                             `json:"confirmed"`
	Application    *application.ApplicationResponse `json:"application"`
	NewTotalPoints *int                             `json:"new_total_points,omitempty"`
}

func participantResponse(p Participant) ParticipantResponse {
	return ParticipantResponse{
		ApplicationID:  p.ApplicationID,
		VolunteerID:    p.VolunteerID,
		VolunteerName:  p.VolunteerName,
		VolunteerEmail: p.VolunteerEmail,
		PointsAwarded:  p.PointsAwarded,
		NewTotalPoints: p.NewTotalPoints,
	}
}

func SummaryResponseFromEntity(s *Summary) *SummaryResponse {
	participants := make([]ParticipantResponse, len(s.Participants))
	for i, p := range s.Participants {
		participants[i] = participantResponse(p)
	}
	return &SummaryResponse{
		OpportunityID:              s.OpportunityID,
		Title:                      s.Title,
		Status:                     s.Status,
		ConcludedAt:                s.ConcludedAt,
		TotalParticipantsConfirmed: s.TotalParticipantsConfirmed,
		TotalPointsAwarded:         s.TotalPointsAwarded,
		Participants:               participants,
	}
}

func ConfirmationResponseFromEntity(c *Confirmation) *ConfirmationResponse {
	resp := &ConfirmationResponse{
		Confirmed:   c.Confirmed,
		Application: application.ApplicationResponseFromEntity(c.Application),
	}
	if c.Participant != nil {
		total := c.Participant.NewTotalPoints
		resp.NewTotalPoints = &total
	}
	return resp
}
