package volunteer

import (
	"strings"
	"time"
)

// Volunteer represents a person who applies to opportunities and earns points (matches volunteers table)
type Volunteer struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	TotalPoints int       `db:"total_points"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
