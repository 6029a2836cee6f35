package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository applies ledger primitives to persisted balances.
// The Tx methods never commit or roll back; the caller owns the transaction.
type Repository interface {
	CreditTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta TxMeta) (int, error)
	DebitTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta TxMeta) (int, error)
	GetBalance(ctx context.Context, volunteerID int64) (int, error)
	ListTransactions(ctx context.Context, volunteerID int64, pagination Pagination) ([]PointTransaction, error)
}

// PointsRepository stores balances on volunteers and history in point_transactions.
type PointsRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// CreditTx adds amount to the volunteer's balance with a single atomic UPDATE
// and returns the new total. A zero credit writes no history row.
func (r *PointsRepository) CreditTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta TxMeta) (int, error) {
	// The UPDATE below is Credit applied in place; Credit owns the amount rule.
	if _, err := Credit(0, amount); err != nil {
		return 0, err
	}

	var total int
	err := tx.QueryRowxContext(ctx, `
		UPDATE volunteers
		SET total_points = total_points + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING total_points
	`, volunteerID, amount).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVolunteerNotFound
		}
		return 0, fmt.Errorf("credit volunteer %d: %w", volunteerID, err)
	}

	if amount == 0 {
		return total, nil
	}

	if err := r.insertHistory(ctx, tx, volunteerID, amount, TxTypeEarn, meta); err != nil {
		return 0, err
	}

	return total, nil
}

// DebitTx locks the volunteer row, checks the balance and subtracts amount.
func (r *PointsRepository) DebitTx(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amount int, meta TxMeta) (int, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}

	var balance int
	err := tx.QueryRowxContext(ctx, `SELECT total_points FROM volunteers WHERE id = $1 FOR UPDATE`, volunteerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVolunteerNotFound
		}
		return 0, fmt.Errorf("lock volunteer %d: %w", volunteerID, err)
	}

	next, err := Debit(balance, amount)
	if err != nil {
		return balance, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE volunteers SET total_points = $2, updated_at = NOW() WHERE id = $1`, volunteerID, next); err != nil {
		return 0, fmt.Errorf("debit volunteer %d: %w", volunteerID, err)
	}

	if amount > 0 {
		if err := r.insertHistory(ctx, tx, volunteerID, -amount, TxTypeSpend, meta); err != nil {
			return 0, err
		}
	}

	return next, nil
}

func (r *PointsRepository) GetBalance(ctx context.Context, volunteerID int64) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance int
	err := r.db.GetContext(ctx2, &balance, `SELECT total_points FROM volunteers WHERE id = $1`, volunteerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVolunteerNotFound
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

func (r *PointsRepository) ListTransactions(ctx context.Context, volunteerID int64, pagination Pagination) ([]PointTransaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	limit := pagination.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions := make([]PointTransaction, 0)
	err := r.db.SelectContext(ctx2, &transactions, `
		SELECT id, volunteer_id, amount_delta, tx_type, related_entity_type, related_entity_id, description, created_at
		FROM point_transactions
		WHERE volunteer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, volunteerID, limit, pagination.Offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return transactions, nil
}

func (r *PointsRepository) insertHistory(ctx context.Context, tx *sqlx.Tx, volunteerID int64, amountDelta int, txType TxType, meta TxMeta) error {
	if strings.TrimSpace(meta.Description) == "" {
		meta.Description = "point balance adjustment"
	}

	var entityType sql.NullString
	var entityID sql.NullInt64
	if meta.RelatedEntityType != "" {
		entityType = sql.NullString{String: meta.RelatedEntityType, Valid: true}
		entityID = sql.NullInt64{Int64: meta.RelatedEntityID, Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO point_transactions (
			volunteer_id, amount_delta, tx_type, related_entity_type, related_entity_id, description
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, volunteerID, amountDelta, string(txType), entityType, entityID, meta.Description)
	if err != nil {
		return fmt.Errorf("insert point transaction: %w", err)
	}

	return nil
}
