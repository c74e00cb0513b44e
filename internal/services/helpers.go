package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// NormalizeRequired trims a value and rejects blanks with the given message.
func NormalizeRequired(value, message string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New(message)
	}
	return trimmed, nil
}

// CleanTags trims, dedupes, and caps a tag list.
func CleanTags(tags []string) []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		value := strings.TrimSpace(tag)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		cleaned = append(cleaned, value)
		if len(cleaned) >= 12 {
			break
		}
	}
	return cleaned
}

// StringValues flattens a tag list that may arrive typed or as a decoded
// JSON array ([]any with string elements).
func StringValues(value any) []string {
	switch list := value.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

var spaceRE = regexp.MustCompile(`\s+`)

func CleanSearchTerm(term string) string {
	cleaned := strings.TrimSpace(term)
	return spaceRE.ReplaceAllString(cleaned, " ")
}

// encodeJSONValue converts a typed value into its generic JSON shape so it
// can live inside a store.Record patch.
func encodeJSONValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
