package score

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/grid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTopOrdering(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Result{
		{Name: "ann", Score: 30, PlayedAt: base},
		{Name: "bob", Score: 90, PlayedAt: base.Add(time.Minute)},
		{Name: "cat", Score: 60, PlayedAt: base.Add(2 * time.Minute)},
		{Name: "dan", Score: 90, PlayedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		if _, err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	want := []string{"bob", "dan", "cat"}
	if len(top) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("Rank %d: expected %s, got %s", i+1, name, top[i].Name)
		}
	}

	best, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.Name != "bob" || best.Score != 90 {
		t.Errorf("Expected bob with 90, got %s with %d", best.Name, best.Score)
	}

	rank, err := s.Rank(ctx, 70)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if rank != 3 {
		t.Errorf("Expected rank 3, got %d", rank)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	in := Result{
		ID:        uuid.New(),
		Name:      "  eve  ",
		Score:     120,
		Level:     2,
		Length:    9,
		FoodEaten: 12,
		Duration:  83*time.Second + 400*time.Millisecond,
		PlayedAt:  time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC),
	}
	saved, err := s.Record(ctx, in)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if saved.Name != "eve" {
		t.Errorf("Expected trimmed name, got %q", saved.Name)
	}

	got, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if got.ID != in.ID {
		t.Errorf("Expected id %s, got %s", in.ID, got.ID)
	}
	if got.Score != 120 || got.Level != 2 || got.Length != 9 || got.FoodEaten != 12 {
		t.Errorf("Field mismatch: %+v", got)
	}
	if got.Duration != in.Duration {
		t.Errorf("Expected duration %v, got %v", in.Duration, got.Duration)
	}
	if !got.PlayedAt.Equal(in.PlayedAt) {
		t.Errorf("Expected played at %v, got %v", in.PlayedAt, got.PlayedAt)
	}
}

func TestRecordDefaults(t *testing.T) {
	s := openTemp(t)
	saved, err := s.Record(context.Background(), Result{Score: 5})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Error("Expected generated id")
	}
	if saved.Name != DefaultName {
		t.Errorf("Expected %q, got %q", DefaultName, saved.Name)
	}
	if saved.PlayedAt.IsZero() {
		t.Error("Expected timestamp")
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Best(ctx); !errors.Is(err, ErrNoScores) {
		t.Errorf("Expected ErrNoScores, got %v", err)
	}
	if _, err := s.Top(ctx, 0); !errors.Is(err, ErrBadLimit) {
		t.Errorf("Expected ErrBadLimit, got %v", err)
	}
	top, err := s.Top(ctx, 5)
	if err != nil || len(top) != 0 {
		t.Errorf("Expected empty top, got %v %v", top, err)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.Record(ctx, Result{Name: "fay", Score: 40}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()
	best, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.Name != "fay" {
		t.Errorf("Expected fay, got %s", best.Name)
	}
}

func TestResultFromSnapshot(t *testing.T) {
	snap := engine.Snapshot{
		Score:     70,
		Level:     1,
		FoodEaten: 7,
		Snake:     make([]grid.Position, 10),
		Elapsed:   42 * time.Second,
	}
	r := ResultFromSnapshot("gus", snap, engine.TestEpoch)
	if r.Score != 70 || r.Length != 10 || r.FoodEaten != 7 || r.Duration != 42*time.Second {
		t.Errorf("Field mismatch: %+v", r)
	}
	if r.ID == uuid.Nil {
		t.Error("Expected id")
	}
}
