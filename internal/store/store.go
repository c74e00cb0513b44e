// Package store implements the versioned entity store every Ascenda
// collection lives in: a JSON collection persisted under one key-value
// entry, with filter, sort and seed-based version migration.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"ascenda-backend-go/internal/kv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is one persisted entity. Field values carry JSON types only:
// string, float64, bool, nil, []any, map[string]any.
type Record = map[string]any

var ErrNotFound = errors.New("record not found")

// MigrateFunc transforms a previously persisted collection when the
// version tag changes. Returning nil falls back to the seed.
type MigrateFunc func(old, seed []Record) []Record

type Options struct {
	Version string
	Migrate MigrateFunc
}

// Store owns one collection. Every read returns deep clones, so callers
// can never alias internal state.
type Store struct {
	backend kv.Store
	key     string
	opts    Options

	mu    sync.Mutex
	items []Record
	nowFn func() time.Time
}

// New loads the collection from the backend, seeding it on first run and
// replacing it when the persisted version tag differs from opts.Version.
func New(ctx context.Context, backend kv.Store, key string, seed []Record, opts Options) (*Store, error) {
	s := &Store{
		backend: backend,
		key:     key,
		opts:    opts,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	if err := s.load(ctx, seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context, seed []Record) error {
	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return err
	}
	fresh := !found
	if found {
		if err := json.Unmarshal(raw, &s.items); err != nil {
			// Unreadable payloads degrade to the seed instead of wedging startup.
			s.items = cloneRecords(seed)
			fresh = true
		}
	} else {
		s.items = cloneRecords(seed)
	}
	if fresh {
		if err := s.persist(ctx); err != nil {
			return err
		}
	}
	if s.opts.Version == "" {
		return nil
	}
	stored := ""
	if raw, found, err := s.backend.Get(ctx, s.versionKey()); err != nil {
		return err
	} else if found {
		stored = string(raw)
	}
	if stored == s.opts.Version {
		return nil
	}
	if !fresh {
		migrated := []Record(nil)
		if s.opts.Migrate != nil {
			migrated = s.opts.Migrate(cloneRecords(s.items), cloneRecords(seed))
		}
		if migrated == nil {
			migrated = cloneRecords(seed)
		}
		s.items = migrated
		if err := s.persist(ctx); err != nil {
			return err
		}
	}
	return s.backend.Set(ctx, s.versionKey(), []byte(s.opts.Version))
}

func (s *Store) versionKey() string {
	return s.key + "_version"
}

func (s *Store) persist(ctx context.Context) error {
	if s.items == nil {
		s.items = []Record{}
	}
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.key, raw)
}

// List returns a cloned copy of the collection, optionally sorted by field
// name ("-field" for descending) and truncated to limit entries.
func (s *Store) List(ctx context.Context, sortSpec string, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := cloneRecords(s.items)
	sortRecords(out, sortSpec)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Filter returns clones of the records matching every condition in the query.
func (s *Store) Filter(ctx context.Context, query Query, sortSpec string, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Record{}
	for _, item := range s.items {
		if query.matches(item) {
			out = append(out, cloneRecord(item))
		}
	}
	sortRecords(out, sortSpec)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindByID compares ids by their string form, so numeric 1 and "1" are the
// same record.
func (s *Store) FindByID(ctx context.Context, id any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if sameID(item["id"], id) {
			return cloneRecord(item), nil
		}
	}
	return nil, ErrNotFound
}

// Create appends the record, assigning max numeric id + 1 when no id is
// supplied and stamping created_date once.
func (s *Store) Create(ctx context.Context, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := cloneRecord(rec)
	if out == nil {
		out = Record{}
	}
	if out["id"] == nil {
		out["id"] = s.nextID()
	}
	if out["created_date"] == nil {
		out["created_date"] = s.nowFn().Format(time.RFC3339)
	}
	s.items = append(s.items, cloneRecord(out))
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Update shallow-merges the patch into the matching record. Nil-valued
// patch entries are dropped, so callers can pass a full object and leave
// fields untouched. updated_at is stamped unless the patch carries one.
func (s *Store) Update(ctx context.Context, id any, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, item := range s.items {
		if sameID(item["id"], id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	merged := cloneRecord(s.items[idx])
	for field, value := range patch {
		if value == nil || field == "id" {
			continue
		}
		merged[field] = cloneValue(value)
	}
	if patch["updated_at"] == nil {
		merged["updated_at"] = s.nowFn().Format(time.RFC3339)
	}
	s.items[idx] = merged
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return cloneRecord(merged), nil
}

// Remove deletes the matching record. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]Record, 0, len(s.items))
	changed := false
	for _, item := range s.items {
		if sameID(item["id"], id) {
			changed = true
			continue
		}
		kept = append(kept, item)
	}
	if !changed {
		return nil
	}
	s.items = kept
	return s.persist(ctx)
}

// GetAll returns a clone of the full collection.
func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.items), nil
}

// SetAll replaces the full collection.
func (s *Store) SetAll(ctx context.Context, items []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneRecords(items)
	return s.persist(ctx)
}

func (s *Store) nextID() float64 {
	max := float64(0)
	for _, item := range s.items {
		if value, ok := numericValue(item["id"]); ok && value > max {
			max = value
		}
	}
	return max + 1
}

var stringCollator = collate.New(language.Und)

func sortRecords(items []Record, spec string) {
	if spec == "" {
		return
	}
	field := spec
	desc := false
	if strings.HasPrefix(spec, "-") {
		desc = true
		field = spec[1:]
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return lessValue(items[j][field], items[i][field])
		}
		return lessValue(items[i][field], items[j][field])
	})
}

func lessValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	if af, aok := numericValue(a); aok {
		if bf, bok := numericValue(b); bok {
			return af < bf
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return stringCollator.CompareString(as, bs) < 0
		}
	}
	return false
}
