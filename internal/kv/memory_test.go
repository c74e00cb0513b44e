package kv

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, found, err := m.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}

	if err := m.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, found, err := m.Get(ctx, "key")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(raw) != "value" {
		t.Fatalf("got %q", raw)
	}

	if err := m.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := m.Get(ctx, "key"); found {
		t.Fatal("key survived delete")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	value := []byte("original")
	_ = m.Set(ctx, "key", value)
	value[0] = 'X'

	raw, _, _ := m.Get(ctx, "key")
	if string(raw) != "original" {
		t.Fatalf("stored value aliased caller slice: %q", raw)
	}

	raw[0] = 'Y'
	again, _, _ := m.Get(ctx, "key")
	if string(again) != "original" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}
