package store

import (
	"log"
	"reflect"
)

// Query maps field names to conditions; all conditions must match.
type Query map[string]Cond

// Cond is one filter condition. The three variants mirror the shapes a
// filter criterion can take: an exact value, a membership set, or a
// predicate.
type Cond interface {
	match(value any, rec Record) bool
}

// Eq matches records whose field equals the given value.
func Eq(value any) Cond {
	return eqCond{value: value}
}

// OneOf matches when the field equals any of the values. When the field is
// itself array-valued, a non-empty intersection counts as a match.
func OneOf(values ...any) Cond {
	return oneOfCond{values: values}
}

// Where matches through a caller-supplied predicate. A panicking predicate
// excludes the record instead of propagating; malformed filters must not
// take the caller down.
func Where(fn func(value any, rec Record) bool) Cond {
	return whereCond{fn: fn}
}

func (q Query) matches(rec Record) bool {
	for field, cond := range q {
		if cond == nil {
			continue
		}
		if !cond.match(rec[field], rec) {
			return false
		}
	}
	return true
}

type eqCond struct {
	value any
}

func (c eqCond) match(value any, _ Record) bool {
	return looseEqual(value, c.value)
}

type oneOfCond struct {
	values []any
}

func (c oneOfCond) match(value any, _ Record) bool {
	if members, ok := value.([]any); ok {
		for _, candidate := range c.values {
			for _, member := range members {
				if looseEqual(member, candidate) {
					return true
				}
			}
		}
		return false
	}
	for _, candidate := range c.values {
		if looseEqual(value, candidate) {
			return true
		}
	}
	return false
}

type whereCond struct {
	fn func(value any, rec Record) bool
}

func (c whereCond) match(value any, rec Record) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("store: filter predicate failed: %v", r)
			matched = false
		}
	}()
	matched = c.fn(value, rec)
	return matched
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := numericValue(a); aok {
		bf, bok := numericValue(b)
		return bok && af == bf
	}
	switch a.(type) {
	case string, bool:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
