package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConflictEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Conflict(w, "Opportunity already concluded")

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error == nil || body.Error.Code != "CONFLICT" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListMeta(t *testing.T) {
	w := httptest.NewRecorder()
	List(w, []int{1, 2, 3}, 3)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Meta == nil || body.Meta.Total != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	page, limit := PageParams(r)
	if page != 3 || limit != 20 {
		t.Fatalf("expected page 3 limit 20, got %d/%d", page, limit)
	}
}

func TestPaginatedMeta(t *testing.T) {
	w := httptest.NewRecorder()
	Paginated(w, []int{1}, 41, 2, 20)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta.Pages != 3 || !body.Meta.HasNext || !body.Meta.HasPrev {
		t.Fatalf("unexpected meta: %+v", body.Meta)
	}
}

func TestDecodeJSON(t *testing.T) {
	var req struct {
		BenefitID int64 `json:"benefit_id"`
	}
	if err := DecodeJSON(io.NopCloser(strings.NewReader(`{"benefit_id":7}`)), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.BenefitID != 7 {
		t.Fatalf("expected benefit_id 7, got %d", req.BenefitID)
	}

	if err := DecodeJSON(io.NopCloser(strings.NewReader(`{"benefit_id":`)), &req); err == nil {
		t.Fatal("expected error for truncated body")
	}
	if err := DecodeJSON(io.NopCloser(strings.NewReader("")), &req); err != io.EOF {
		t.Fatalf("expected io.EOF for empty body, got %v", err)
	}
}
