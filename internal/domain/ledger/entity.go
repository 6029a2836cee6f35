package ledger

import (
	"database/sql"
	"time"
)

// TxType is the direction of a point movement.
type TxType string

const (
	TxTypeEarn  TxType = "EARN"
	TxTypeSpend TxType = "SPEND"
)

// Related entity types recorded on history rows.
const (
	EntityApplication = "application"
	EntityRedemption  = "redemption"
)

// TxMeta describes what caused a point movement.
type TxMeta struct {
	RelatedEntityType string
	RelatedEntityID   int64
	Description       string
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}

// PointTransaction is a ledger history row.
type PointTransaction struct {
	ID                int64          `db:"id"`
	VolunteerID       int64          `db:"volunteer_id"`
	AmountDelta       int            `db:"amount_delta"`
	TxType            TxType         `db:"tx_type"`
	RelatedEntityType sql.NullString `db:"related_entity_type"`
	RelatedEntityID   sql.NullInt64  `db:"related_entity_id"`
	Description       string         `db:"description"`
	CreatedAt         time.Time      `db:"created_at"`
}
