package store

import (
	"context"
	"testing"
	"time"

	"ascenda-backend-go/internal/kv"
)

func testStore(t *testing.T, seed []Record, opts Options) (*Store, kv.Store) {
	t.Helper()
	backend := kv.NewMemory()
	s, err := New(context.Background(), backend, "test_items", seed, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, backend
}

func TestSeedOnFirstLoad(t *testing.T) {
	seed := []Record{{"id": float64(1), "name": "alpha"}}
	s, backend := testStore(t, seed, Options{})

	items, err := s.List(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0]["name"] != "alpha" {
		t.Fatalf("unexpected items: %v", items)
	}

	// A second store over the same backend reads the persisted copy, not
	// the seed.
	s2, err := New(context.Background(), backend, "test_items", []Record{{"id": float64(9), "name": "other"}}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, _ = s2.List(context.Background(), "", 0)
	if len(items) != 1 || items[0]["name"] != "alpha" {
		t.Fatalf("expected persisted data, got %v", items)
	}
}

func TestVersionMismatchReseeds(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()

	s, err := New(ctx, backend, "items", []Record{{"id": float64(1), "name": "v1"}}, Options{Version: "1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Create(ctx, Record{"name": "user data"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s2, err := New(ctx, backend, "items", []Record{{"id": float64(1), "name": "v2"}}, Options{Version: "2"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, _ := s2.List(ctx, "", 0)
	if len(items) != 1 || items[0]["name"] != "v2" {
		t.Fatalf("expected reseed to v2, got %v", items)
	}
}

func TestVersionMatchKeepsData(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()

	s, err := New(ctx, backend, "items", nil, Options{Version: "1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Create(ctx, Record{"name": "kept"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s2, err := New(ctx, backend, "items", nil, Options{Version: "1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, _ := s2.List(ctx, "", 0)
	if len(items) != 1 || items[0]["name"] != "kept" {
		t.Fatalf("expected data to survive, got %v", items)
	}
}

func TestVersionMismatchRunsMigration(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()

	s, err := New(ctx, backend, "items", nil, Options{Version: "1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Create(ctx, Record{"name": "old"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	migrate := func(old, seed []Record) []Record {
		for _, rec := range old {
			rec["migrated"] = true
		}
		return old
	}
	s2, err := New(ctx, backend, "items", nil, Options{Version: "2", Migrate: migrate})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, _ := s2.List(ctx, "", 0)
	if len(items) != 1 || items[0]["migrated"] != true {
		t.Fatalf("expected migrated record, got %v", items)
	}
}

func TestCorruptPayloadFallsBackToSeed(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()
	if err := backend.Set(ctx, "items", []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s, err := New(ctx, backend, "items", []Record{{"id": float64(1), "name": "seed"}}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, _ := s.List(ctx, "", 0)
	if len(items) != 1 || items[0]["name"] != "seed" {
		t.Fatalf("expected seed fallback, got %v", items)
	}
}

func TestReadsReturnClones(t *testing.T) {
	seed := []Record{{"id": float64(1), "tags": []any{"a"}}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	items, _ := s.List(ctx, "", 0)
	items[0]["tags"].([]any)[0] = "mutated"
	items[0]["id"] = float64(99)

	fresh, err := s.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if fresh["tags"].([]any)[0] != "a" {
		t.Fatal("mutating a returned record leaked into the store")
	}
}

func TestCreateAssignsNextID(t *testing.T) {
	seed := []Record{{"id": float64(4)}, {"id": float64(2)}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	created, err := s.Create(ctx, Record{"name": "new"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created["id"] != float64(5) {
		t.Fatalf("expected id 5, got %v", created["id"])
	}
	if created["created_date"] == nil {
		t.Fatal("created_date not stamped")
	}

	// Supplied ids are kept verbatim.
	withID, err := s.Create(ctx, Record{"id": "custom-7", "name": "explicit"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if withID["id"] != "custom-7" {
		t.Fatalf("expected supplied id, got %v", withID["id"])
	}
}

func TestUpdateDropsNilPatchValues(t *testing.T) {
	seed := []Record{{"id": float64(1), "name": "keep", "status": "old"}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	updated, err := s.Update(ctx, 1, Record{"status": "new", "name": nil})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated["name"] != "keep" {
		t.Fatalf("nil patch value should be ignored, got name=%v", updated["name"])
	}
	if updated["status"] != "new" {
		t.Fatalf("expected status new, got %v", updated["status"])
	}
	if updated["updated_at"] == nil {
		t.Fatal("updated_at not stamped")
	}
}

func TestUpdateCannotChangeID(t *testing.T) {
	seed := []Record{{"id": float64(1), "name": "x"}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	updated, err := s.Update(ctx, 1, Record{"id": float64(42), "name": "y"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated["id"] != float64(1) {
		t.Fatalf("id changed to %v", updated["id"])
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	s, _ := testStore(t, nil, Options{})
	if _, err := s.Update(context.Background(), 404, Record{"a": 1}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	seed := []Record{{"id": float64(1)}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	items, _ := s.List(ctx, "", 0)
	if len(items) != 0 {
		t.Fatalf("expected empty store, got %v", items)
	}
}

func TestFindByIDCoercesStrings(t *testing.T) {
	seed := []Record{{"id": float64(3), "name": "numeric"}}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	rec, err := s.FindByID(ctx, "3")
	if err != nil {
		t.Fatalf("FindByID by string: %v", err)
	}
	if rec["name"] != "numeric" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSortAndLimit(t *testing.T) {
	seed := []Record{
		{"id": float64(1), "points": float64(10), "name": "c"},
		{"id": float64(2), "points": float64(30), "name": "a"},
		{"id": float64(3), "points": nil, "name": "b"},
	}
	s, _ := testStore(t, seed, Options{})
	ctx := context.Background()

	asc, _ := s.List(ctx, "points", 0)
	if asc[0]["id"] != float64(3) {
		t.Fatalf("nil values should sort first, got %v", asc[0])
	}

	desc, _ := s.List(ctx, "-points", 2)
	if len(desc) != 2 {
		t.Fatalf("limit not applied: %d items", len(desc))
	}
	if desc[0]["id"] != float64(2) {
		t.Fatalf("descending sort broken: %v", desc[0])
	}

	byName, _ := s.List(ctx, "name", 0)
	if byName[0]["name"] != "a" || byName[2]["name"] != "c" {
		t.Fatalf("string sort broken: %v", byName)
	}
}

func TestFilterMatchesAllConditions(t *testing.T) {
	seed := []Record{
		{"id": float64(1), "status": "active", "track": "backend"},
		{"id": float64(2), "status": "active", "track": "frontend"},
		{"id": float64(3), "status": "paused", "track": "backend"},
	}
	s, _ := testStore(t, seed, Options{})

	out, err := s.Filter(context.Background(), Query{
		"status": Eq("active"),
		"track":  Eq("backend"),
	}, "", 0)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(out) != 1 || out[0]["id"] != float64(1) {
		t.Fatalf("unexpected filter result: %v", out)
	}
}

func TestCreatedDateNotOverwritten(t *testing.T) {
	s, _ := testStore(t, nil, Options{})
	ctx := context.Background()

	created, err := s.Create(ctx, Record{"created_date": "2020-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created["created_date"] != "2020-01-01T00:00:00Z" {
		t.Fatalf("supplied created_date replaced: %v", created["created_date"])
	}
}

func TestUpdatedAtHonorsPatchValue(t *testing.T) {
	seed := []Record{{"id": float64(1)}}
	s, _ := testStore(t, seed, Options{})
	s.nowFn = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }

	updated, err := s.Update(context.Background(), 1, Record{"updated_at": "2025-12-31T00:00:00Z"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated["updated_at"] != "2025-12-31T00:00:00Z" {
		t.Fatalf("patch updated_at replaced: %v", updated["updated_at"])
	}
}
