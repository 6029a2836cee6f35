package benefit

import "time"

// Category of a benefit
type Category string

const (
	// CategoryUA benefits are provided by the platform itself and never count as partner benefits.
	CategoryUA      Category = "UA"
	CategoryPartner Category = "PARTNER"
)

// Benefit is a reward volunteers can redeem points for
type Benefit struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Provider       string    `db:"provider"`
	Category       Category  `db:"category"`
	PointsRequired int       `db:"points_required"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// IsPartner reports whether the benefit belongs to an external partner
func (b *Benefit) IsPartner() bool {
	return b.Category == CategoryPartner
}
