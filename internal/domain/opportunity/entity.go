package opportunity

import (
	"database/sql"
	"time"
)

// Status represents opportunity status
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusConcluded Status = "CONCLUDED"
)

// Opportunity is a volunteering engagement worth a fixed reward per confirmed participant (matches opportunities table)
type Opportunity struct {
	ID          int64        `db:"id"`
	PromoterID  int64        `db:"promoter_id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Points      int          `db:"points"`
	Status      Status       `db:"status"`
	ConcludedAt sql.NullTime `db:"concluded_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// IsOpen returns true while the opportunity accepts applications and confirmations
func (o *Opportunity) IsOpen() bool {
	return o.Status == StatusOpen
}

// IsConcluded returns true once points have been awarded and the opportunity closed
func (o *Opportunity) IsConcluded() bool {
	return o.Status == StatusConcluded
}

// IsOwnedBy reports whether promoterID created the opportunity
func (o *Opportunity) IsOwnedBy(promoterID int64) bool {
	return o.PromoterID == promoterID
}

// CheckManageableBy verifies promoterID may confirm participants or conclude.
// Ownership is checked before state so a foreign promoter learns nothing about it.
func (o *Opportunity) CheckManageableBy(promoterID int64) error {
	if !o.IsOwnedBy(promoterID) {
		return ErrNotOpportunityOwner
	}
	if o.IsConcluded() {
		return ErrAlreadyConcluded
	}
	return nil
}

// Conclude moves the opportunity to its terminal state. It is a no-op returning
// false when the opportunity is already concluded.
func (o *Opportunity) Conclude(now time.Time) bool {
	if !o.IsOpen() {
		return false
	}
	o.Status = StatusConcluded
	o.ConcludedAt = sql.NullTime{Time: now, Valid: true}
	o.UpdatedAt = now
	return true
}
