package lookupstore

import (
	"testing"

	"github.com/dalemusser/shelterhub/internal/testutil"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	for i := 0; i < 2; i++ {
		if err := s.Seed(ctx); err != nil {
			t.Fatalf("seed (pass %d): %v", i+1, err)
		}
	}

	species, err := s.Species(ctx)
	if err != nil {
		t.Fatalf("list species: %v", err)
	}
	if len(species) != 2 {
		t.Fatalf("expected 2 species, got %d", len(species))
	}
	if species[0].ID != 1 || species[0].Species != "dog" {
		t.Errorf("unexpected first species: %+v", species[0])
	}

	colors, err := s.Colors(ctx)
	if err != nil {
		t.Fatalf("list colors: %v", err)
	}
	if len(colors) != 12 {
		t.Fatalf("expected 12 colors, got %d", len(colors))
	}

	statuses, err := s.Statuses(ctx)
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
}

func TestValidColorIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name string
		ids  []int
		want bool
	}{
		{"empty", nil, true},
		{"known", []int{1, 2, 3}, true},
		{"duplicates", []int{1, 1, 2}, true},
		{"unknown", []int{1, 999}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ValidColorIDs(ctx, tc.ids)
			if err != nil {
				t.Fatalf("ValidColorIDs: %v", err)
			}
			if got != tc.want {
				t.Errorf("ValidColorIDs(%v) = %v, want %v", tc.ids, got, tc.want)
			}
		})
	}
}
