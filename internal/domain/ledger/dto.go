package ledger

import "time"

// TransactionResponse represents a point history row in API responses
type TransactionResponse struct {
	ID                int64     `json:"id"`
	AmountDelta       int       `json:"amount_delta"`
	TxType            TxType    `json:"tx_type"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64    `json:"related_entity_id,omitempty"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"created_at"`
}

func TransactionResponseFromEntity(t PointTransaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		AmountDelta: t.AmountDelta,
		TxType:      t.TxType,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
	if t.RelatedEntityType.Valid {
		resp.RelatedEntityType = &t.RelatedEntityType.String
	}
	if t.RelatedEntityID.Valid {
		resp.RelatedEntityID = &t.RelatedEntityID.Int64
	}
	return resp
}
