package store

import (
	"context"
	"testing"
)

func queryStore(t *testing.T) *Store {
	t.Helper()
	seed := []Record{
		{"id": float64(1), "status": "pending", "tags": []any{"go", "sql"}, "points": float64(10)},
		{"id": float64(2), "status": "approved", "tags": []any{"react"}, "points": float64(20)},
		{"id": float64(3), "status": "pending", "tags": []any{}, "points": nil},
	}
	s, _ := testStore(t, seed, Options{})
	return s
}

func TestEqCoercesNumericTypes(t *testing.T) {
	s := queryStore(t)
	// int64 query value against the float64 the JSON layer stores.
	out, err := s.Filter(context.Background(), Query{"id": Eq(int64(2))}, "", 0)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(out) != 1 || out[0]["status"] != "approved" {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestOneOfScalarField(t *testing.T) {
	s := queryStore(t)
	out, _ := s.Filter(context.Background(), Query{"status": OneOf("pending", "rejected")}, "", 0)
	if len(out) != 2 {
		t.Fatalf("expected 2 pending records, got %d", len(out))
	}
}

func TestOneOfIntersectsArrayFields(t *testing.T) {
	s := queryStore(t)
	out, _ := s.Filter(context.Background(), Query{"tags": OneOf("sql", "python")}, "", 0)
	if len(out) != 1 || out[0]["id"] != float64(1) {
		t.Fatalf("expected record 1, got %v", out)
	}

	// Empty arrays never match.
	out, _ = s.Filter(context.Background(), Query{"tags": OneOf("anything")}, "", 0)
	if len(out) != 0 {
		t.Fatalf("empty-array field matched: %v", out)
	}
}

func TestWherePredicate(t *testing.T) {
	s := queryStore(t)
	out, _ := s.Filter(context.Background(), Query{
		"points": Where(func(value any, _ Record) bool {
			points, ok := value.(float64)
			return ok && points >= 15
		}),
	}, "", 0)
	if len(out) != 1 || out[0]["id"] != float64(2) {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestWherePanicExcludesRecord(t *testing.T) {
	s := queryStore(t)
	out, err := s.Filter(context.Background(), Query{
		"points": Where(func(value any, _ Record) bool {
			// Panics on the record whose points are nil.
			return value.(float64) > 0
		}),
	}, "", 0)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected panicking record to be excluded, got %d matches", len(out))
	}
}

func TestNilConditionIsIgnored(t *testing.T) {
	s := queryStore(t)
	out, _ := s.Filter(context.Background(), Query{"status": nil}, "", 0)
	if len(out) != 3 {
		t.Fatalf("nil condition should match everything, got %d", len(out))
	}
}
