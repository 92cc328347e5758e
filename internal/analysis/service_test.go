package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/sharecode"
)

type fakeRepo struct {
	stored map[string]*Analysis
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[string]*Analysis)}
}

func (f *fakeRepo) Save(_ context.Context, id, name string, state json.RawMessage) error {
	now := time.Now()
	created := now
	if prev, ok := f.stored[id]; ok {
		created = prev.CreatedAt
	}
	f.stored[id] = &Analysis{ID: id, Name: name, State: state, CreatedAt: created, UpdatedAt: now}
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*Analysis, error) {
	a, ok := f.stored[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) List(_ context.Context, _ int) ([]Summary, error) {
	var out []Summary
	for _, a := range f.stored {
		out = append(out, Summary{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt})
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.stored[id]; !ok {
		return ErrNotFound
	}
	delete(f.stored, id)
	return nil
}

func testState() sharecode.State {
	return sharecode.State{
		Selected:     []string{"p1"},
		Settings:     domain.DefaultSettings(),
		Rates:        domain.GrowthRates{RentPercent: 3, ValuePercent: 4},
		HorizonYears: 30,
	}
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Save(context.Background(), "", "Austin duplexes", testState())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated ID")
	}

	a, state, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Name != "Austin duplexes" {
		t.Errorf("name = %q", a.Name)
	}
	if state.HorizonYears != 30 || len(state.Selected) != 1 {
		t.Errorf("state not preserved: %+v", state)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Save(context.Background(), "", "first", testState())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Save(context.Background(), id, "renamed", testState())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != id {
		t.Errorf("update returned new ID %s, want %s", got, id)
	}
	if len(repo.stored) != 1 {
		t.Errorf("stored count = %d, want 1", len(repo.stored))
	}
	if repo.stored[id].Name != "renamed" {
		t.Errorf("name = %q", repo.stored[id].Name)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Save(context.Background(), "", "   ", testState()); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemoves(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Save(context.Background(), "", "gone soon", testState())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
