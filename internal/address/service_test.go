package address

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository())
}

func basicInput(label string) CreateInput {
	return CreateInput{
		Label:      label,
		Line1:      "Rua de Exemplo 1",
		City:       "Lisboa",
		PostalCode: "1000-001",
	}
}

func TestCreateCapsAtThree(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, label := range []string{"Home", "Work", "Gym"} {
		if _, err := s.Create(ctx, "user-1", basicInput(label)); err != nil {
			t.Fatalf("create %s failed: %v", label, err)
		}
	}

	if _, err := s.Create(ctx, "user-1", basicInput("Fourth")); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	// Other users have their own quota.
	if _, err := s.Create(ctx, "user-2", basicInput("Home")); err != nil {
		t.Fatalf("other user's create failed: %v", err)
	}
}

func TestDefaultToggleClearsOthers(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	in1 := basicInput("Home")
	in1.IsDefault = true
	first, err := s.Create(ctx, "user-1", in1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in2 := basicInput("Work")
	in2.IsDefault = true
	second, err := s.Create(ctx, "user-1", in2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list, err := s.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			if a.ID != second.ID {
				t.Fatalf("wrong default: expected %d, got %d", second.ID, a.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly 1 default, got %d", defaults)
	}
	_ = first
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	addr, err := s.Create(ctx, "user-1", basicInput("Home"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := s.Update(ctx, "intruder", addr.ID, basicInput("Stolen")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	updated, err := s.Update(ctx, "user-1", addr.ID, basicInput("Renamed"))
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Label != "Renamed" {
		t.Fatalf("label not updated: %q", updated.Label)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	addr, err := s.Create(ctx, "user-1", basicInput("Home"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.Delete(ctx, "intruder", addr.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if err := s.Delete(ctx, "user-1", addr.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	list, err := s.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestBelongsTo(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	addr, err := s.Create(ctx, "user-1", basicInput("Home"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := s.BelongsTo(ctx, addr.ID, "user-1")
	if err != nil || !ok {
		t.Fatalf("expected owner match, got ok=%v err=%v", ok, err)
	}
	ok, err = s.BelongsTo(ctx, addr.ID, "user-2")
	if err != nil || ok {
		t.Fatalf("expected no match for other user, got ok=%v err=%v", ok, err)
	}
}

func TestFormatForExport(t *testing.T) {
	line2 := "2º Esq"
	a := &Address{
		Line1:      "Rua de Exemplo 1",
		Line2:      &line2,
		City:       "Lisboa",
		PostalCode: "1000-001",
	}
	got := FormatForExport(a)
	want := "Rua de Exemplo 1, 2º Esq, 1000-001 Lisboa"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	a.Line2 = nil
	if got := FormatForExport(a); got != "Rua de Exemplo 1, 1000-001 Lisboa" {
		t.Fatalf("got %q", got)
	}
}
