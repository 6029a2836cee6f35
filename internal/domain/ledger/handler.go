package ledger

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

// HistoryReader is the read side of Repository used by the handler.
type HistoryReader interface {
	GetBalance(ctx context.Context, volunteerID int64) (int, error)
	ListTransactions(ctx context.Context, volunteerID int64, pagination Pagination) ([]PointTransaction, error)
}

// Handler serves point history
type Handler struct {
	repo HistoryReader
}

func NewHandler(repo HistoryReader) *Handler {
	return &Handler{repo: repo}
}

// ListTransactions handles GET /volunteers/{id}/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	volunteerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || volunteerID <= 0 {
		response.BadRequest(w, "Invalid volunteer ID")
		return
	}

	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	// Distinguishes an unknown volunteer from one with no history.
	if _, err := h.repo.GetBalance(r.Context(), volunteerID); err != nil {
		if errors.Is(err, ErrVolunteerNotFound) {
			response.NotFound(w, "Volunteer not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get balance", err)
		return
	}

	txs, err := h.repo.ListTransactions(r.Context(), volunteerID, Pagination{Limit: limit, Offset: offset})
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list transactions", err)
		return
	}

	items := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		items[i] = TransactionResponseFromEntity(t)
	}

	response.WithMeta(w, items, response.Meta{
		Total: len(items),
		Page:  offset/limit + 1,
		Limit: limit,
	})
}
