package validator

import "testing"

type sampleRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Points   int    `json:"points" validate:"gte=0"`
	Status   string `json:"status" validate:"application_status"`
	Category string `json:"category" validate:"benefit_category"`
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	errs := Validate(sampleRequest{
		Name:     "   ",
		Email:    "nope",
		Points:   -1,
		Status:   "CONFIRMED",
		Category: "OTHER",
	})

	for _, field := range []string{"name", "email", "points", "status", "category"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %q, got %#v", field, errs)
		}
	}
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	errs := Validate(sampleRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Points:   10,
		Status:   "ACCEPTED",
		Category: "PARTNER",
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %#v", errs)
	}
}
