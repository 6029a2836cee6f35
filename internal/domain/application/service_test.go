package application

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeOpportunities struct {
	byID map[int64]*opportunity.Opportunity
}

func (f *fakeOpportunities) GetByID(_ context.Context, id int64) (*opportunity.Opportunity, error) {
	return f.byID[id], nil
}

func (f *fakeOpportunities) GetByIDForUpdate(ctx context.Context, _ *sqlx.Tx, id int64) (*opportunity.Opportunity, error) {
	return f.GetByID(ctx, id)
}

type fakeVolunteers struct {
	err error
}

func (f *fakeVolunteers) FindOrCreate(_ context.Context, email, name string) (*volunteer.Volunteer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &volunteer.Volunteer{ID: 7, Email: email, Name: name}, nil
}

type fakeAppRepo struct {
	byID      map[int64]*Application
	pairs     map[[2]int64]bool
	nextID    int64
	updates   int
	staleRows bool
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{byID: map[int64]*Application{}, pairs: map[[2]int64]bool{}, nextID: 1}
}

func (f *fakeAppRepo) Create(_ context.Context, a *Application) error {
	key := [2]int64{a.VolunteerID, a.OpportunityID}
	if f.pairs[key] {
		return ErrAlreadyApplied
	}
	f.pairs[key] = true
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id int64) (*Application, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppRepo) GetByIDForUpdate(ctx context.Context, _ *sqlx.Tx, id int64) (*Application, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeAppRepo) UpdateStatusTx(_ context.Context, _ *sqlx.Tx, id int64, from, to Status) (bool, error) {
	f.updates++
	a := f.byID[id]
	if f.staleRows || a == nil || a.Status != from {
		return false, nil
	}
	a.Status = to
	return true, nil
}

func (f *fakeAppRepo) ListForConclusionTx(context.Context, *sqlx.Tx, int64, []int64) ([]*Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) MarkConfirmedTx(context.Context, *sqlx.Tx, *Application) (bool, error) {
	return false, nil
}

func (f *fakeAppRepo) ListByOpportunity(_ context.Context, opportunityID int64, _ *Pagination) ([]*Application, int, error) {
	var out []*Application
	for _, a := range f.byID {
		if a.OpportunityID == opportunityID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (f *fakeAppRepo) ListByVolunteer(context.Context, int64, *Pagination) ([]*Application, int, error) {
	return nil, 0, nil
}

func newTestService() (*Service, *fakeAppRepo, *fakeOpportunities) {
	repo := newFakeAppRepo()
	opps := &fakeOpportunities{byID: map[int64]*opportunity.Opportunity{
		1: {ID: 1, PromoterID: 10, Points: 150, Status: opportunity.StatusOpen},
		2: {ID: 2, PromoterID: 10, Points: 50, Status: opportunity.StatusConcluded},
	}}
	return NewService(repo, opps, &fakeVolunteers{}, &fakeTx{}), repo, opps
}

func TestCreateApplication(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Create(context.Background(), 1, "ana@example.com", "Ana", "  I can help  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusPending || a.ParticipationConfirmed || a.PointsAwarded != 0 {
		t.Fatalf("new application must be pending and unconfirmed: %+v", a)
	}
	if a.Motivation != "I can help" {
		t.Fatalf("expected trimmed motivation, got %q", a.Motivation)
	}
}

func TestCreateApplicationTwiceIsDuplicate(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), 1, "ana@example.com", "Ana", ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, "ana@example.com", "Ana", ""); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestCreateApplicationMissingOrConcludedOpportunity(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), 99, "ana@example.com", "Ana", ""); !errors.Is(err, ErrOpportunityNotFound) {
		t.Fatalf("expected ErrOpportunityNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, "ana@example.com", "Ana", ""); !errors.Is(err, ErrOpportunityConcluded) {
		t.Fatalf("expected ErrOpportunityConcluded, got %v", err)
	}
}

func TestCreateApplicationPropagatesVolunteerError(t *testing.T) {
	repo := newFakeAppRepo()
	opps := &fakeOpportunities{byID: map[int64]*opportunity.Opportunity{1: {ID: 1, PromoterID: 10, Status: opportunity.StatusOpen}}}
	svc := NewService(repo, opps, &fakeVolunteers{err: volunteer.ErrNameRequired}, &fakeTx{})

	if _, err := svc.Create(context.Background(), 1, "new@example.com", "", ""); !errors.Is(err, volunteer.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestUpdateStatusByOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	a, _ := svc.Create(context.Background(), 1, "ana@example.com", "Ana", "")

	updated, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusAccepted || repo.byID[a.ID].Status != StatusAccepted {
		t.Fatalf("status not persisted: %+v", updated)
	}
}

func TestUpdateStatusGuards(t *testing.T) {
	svc, repo, opps := newTestService()
	a, _ := svc.Create(context.Background(), 1, "ana@example.com", "Ana", "")

	if _, err := svc.UpdateStatus(context.Background(), 11, a.ID, StatusAccepted); !errors.Is(err, ErrNotOpportunityOwner) {
		t.Fatalf("expected ErrNotOpportunityOwner, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 10, 404, StatusAccepted); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusAccepted); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	opps.byID[1].Status = opportunity.StatusConcluded
	if _, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusRejected); !errors.Is(err, ErrOpportunityConcluded) {
		t.Fatalf("expected ErrOpportunityConcluded, got %v", err)
	}
	if repo.byID[a.ID].Status != StatusRejected {
		t.Fatal("status changed after failed update")
	}
}

func TestUpdateStatusSameStatusSkipsWrite(t *testing.T) {
	svc, repo, _ := newTestService()
	a, _ := svc.Create(context.Background(), 1, "ana@example.com", "Ana", "")

	if _, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("expected no write, got %d", repo.updates)
	}
}

func TestUpdateStatusLosesRace(t *testing.T) {
	svc, repo, _ := newTestService()
	a, _ := svc.Create(context.Background(), 1, "ana@example.com", "Ana", "")
	repo.staleRows = true

	if _, err := svc.UpdateStatus(context.Background(), 10, a.ID, StatusAccepted); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestListByOpportunityRequiresOwner(t *testing.T) {
	svc, _, _ := newTestService()
	_, _ = svc.Create(context.Background(), 1, "ana@example.com", "Ana", "")

	if _, _, err := svc.ListByOpportunity(context.Background(), 11, 1, &Pagination{Page: 1, Limit: 20}); !errors.Is(err, ErrNotOpportunityOwner) {
		t.Fatalf("expected ErrNotOpportunityOwner, got %v", err)
	}
	items, total, err := svc.ListByOpportunity(context.Background(), 10, 1, &Pagination{Page: 1, Limit: 20})
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("unexpected result: %v %d %v", items, total, err)
	}
}
