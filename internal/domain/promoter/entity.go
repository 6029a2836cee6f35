package promoter

import "time"

// Promoter represents an opportunity creator (matches promoters table)
type Promoter struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
