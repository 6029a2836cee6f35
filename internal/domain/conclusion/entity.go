package conclusion

import (
	"time"

	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
)

// Participant is one volunteer credited by a conclusion or confirmation.
type Participant struct {
	ApplicationID  int64
	VolunteerID    int64
	VolunteerName  string
	VolunteerEmail string
	PointsAwarded  int
	NewTotalPoints int
}

// Summary reports what a single conclusion call did. Totals count only
// applications confirmed by this call.
type Summary struct {
	OpportunityID              int64
	Title                      string
	Status                     opportunity.Status
	ConcludedAt                time.Time
	TotalParticipantsConfirmed int
	TotalPointsAwarded         int
	Participants               []Participant
}

func (s *Summary) add(p Participant) {
	s.Participants = append(s.Participants, p)
	s.TotalParticipantsConfirmed++
	s.TotalPointsAwarded += p.PointsAwarded
}

// Confirmation is the result of confirming one application.
// Confirmed is false when the application was not eligible; nothing was credited then.
type Confirmation struct {
	Application *application.Application
	Confirmed   bool
	Participant *Participant
}
