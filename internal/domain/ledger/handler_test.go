package ledger

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type historyStub struct {
	balanceErr error
	txs        []PointTransaction
	gotPage    Pagination
}

func (s *historyStub) GetBalance(context.Context, int64) (int, error) { return 0, s.balanceErr }
func (s *historyStub) ListTransactions(_ context.Context, _ int64, p Pagination) ([]PointTransaction, error) {
	s.gotPage = p
	return s.txs, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/volunteers/{id}/transactions", h.ListTransactions)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListTransactionsUnknownVolunteer(t *testing.T) {
	w := serve(NewHandler(&historyStub{balanceErr: ErrVolunteerNotFound}), "/volunteers/9/transactions")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListTransactionsPassesPagination(t *testing.T) {
	stub := &historyStub{txs: []PointTransaction{{ID: 1, AmountDelta: 150, TxType: TxTypeEarn, RelatedEntityType: sql.NullString{String: EntityApplication, Valid: true}}}}
	w := serve(NewHandler(stub), "/volunteers/9/transactions?limit=5&offset=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stub.gotPage.Limit != 5 || stub.gotPage.Offset != 10 {
		t.Fatalf("unexpected pagination: %+v", stub.gotPage)
	}
}

func TestListTransactionsBadID(t *testing.T) {
	w := serve(NewHandler(&historyStub{}), "/volunteers/abc/transactions")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
