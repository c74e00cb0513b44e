package store

import (
	"encoding/json"
	"fmt"
)

// Encode converts a typed entity into a Record through its JSON form.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode fills a typed entity from a Record.
func Decode(rec Record, dst any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// DecodeAll fills a slice of typed entities from records.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var item T
		if err := Decode(rec, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func cloneRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for field, value := range rec {
		out[field] = cloneValue(value)
	}
	return out
}

func cloneRecords(items []Record) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, cloneRecord(item))
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Record:
		return cloneRecord(typed)
	case []any:
		out := make([]any, 0, len(typed))
		for _, member := range typed {
			out = append(out, cloneValue(member))
		}
		return out
	default:
		return value
	}
}

func numericValue(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		return parsed, err == nil
	default:
		return 0, false
	}
}

func sameID(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
