package application

import (
	"database/sql"
	"time"
)

// Status represents application review status
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Application is a volunteer's request to take part in an opportunity (matches applications table)
type Application struct {
	ID            int64 `db:"id"`
	VolunteerID   int64 `db:"volunteer_id"`
	OpportunityID int64 `db:"opportunity_id"`

	Motivation string `db:"motivation"`
	Status     Status `db:"status"`

	ParticipationConfirmed bool         `db:"participation_confirmed"`
	PointsAwarded          int          `db:"points_awarded"`
	ConfirmedAt            sql.NullTime `db:"confirmed_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Joined from volunteers
	VolunteerName  string `db:"volunteer_name"`
	VolunteerEmail string `db:"volunteer_email"`
}

// IsPending returns true if application awaits review
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// IsAccepted returns true if application is accepted
func (a *Application) IsAccepted() bool {
	return a.Status == StatusAccepted
}

// CanConfirm reports whether participation can still be confirmed.
// Only accepted, unconfirmed applications qualify.
func (a *Application) CanConfirm() bool {
	return a.Status == StatusAccepted && !a.ParticipationConfirmed
}

// ConfirmParticipation sets the confirmed flag, the awarded points and the
// confirmation time together. It returns false and changes nothing when the
// application cannot be confirmed, so points are never awarded twice.
func (a *Application) ConfirmParticipation(points int, now time.Time) bool {
	if !a.CanConfirm() {
		return false
	}
	a.ParticipationConfirmed = true
	a.PointsAwarded = points
	a.ConfirmedAt = sql.NullTime{Time: now, Valid: true}
	a.UpdatedAt = now
	return true
}

// CanBeUpdatedTo checks if status transition is valid
func (a *Application) CanBeUpdatedTo(newStatus Status) bool {
	if a.ParticipationConfirmed {
		return newStatus == a.Status
	}
	if newStatus == a.Status {
		return true
	}

	transitions := map[Status][]Status{
		StatusPending:  {StatusAccepted, StatusRejected},
		StatusAccepted: {}, // Final until participation is confirmed
		StatusRejected: {}, // Final state
	}

	for _, s := range transitions[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}
