package container

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Keys consulted, in order, when flattening an object to display text
var flattenPreference = []string{"text", "content", "message", "description", "title"}

// Keys whose nested structure is part of a canonical shape and must
// survive normalization (text sections, danger contacts, and the
// cross-cutting supplementary blocks)
var structuredKeys = map[string]bool{
	"sections":   true,
	"contacts":   true,
	keyAlerts:    true,
	keyNotes:     true,
	keyInfoBoxes: true,
	keyTips:      true,
}

// FlattenText reduces an arbitrary JSON value to a single display
// string. Objects yield their first non-empty preferred field (text,
// content, message, description, title — content recursively); arrays
// join flattened elements with newlines; plain objects concatenate all
// non-empty values. Keys are visited in sorted order so the result is
// deterministic.
func FlattenText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FlattenText(item))
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		for _, key := range flattenPreference {
			if nested, ok := val[key]; ok {
				if s := FlattenText(nested); s != "" {
					return s
				}
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			if s := FlattenText(val[k]); strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return stringifyScalar(val)
	}
}

// stringify renders any JSON value as a single cell/line of text
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		return FlattenText(val)
	default:
		return stringifyScalar(val)
	}
}

func stringifyScalar(v any) string {
	if f, ok := v.(float64); ok {
		// JSON numbers decode as float64; render integers without a
		// trailing fraction
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// hasComplexStructure reports whether a content map contains nested
// objects or arrays-of-objects outside the recognized structured keys.
// Such content cannot be edited as-is and is flattened to plain text.
func hasComplexStructure(m map[string]any) bool {
	for k, v := range m {
		if structuredKeys[k] {
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			if len(val) > 0 {
				return true
			}
		case []any:
			for _, item := range val {
				switch item.(type) {
				case map[string]any, []any:
					return true
				}
			}
		}
	}
	return false
}

// SplitCells normalizes one grid row to a flat slice of cell strings.
// Rows arrive in three forms: a comma-joined string, an array of cell
// values, or a single-element array holding a comma-joined string. All
// three produce the same cells.
func SplitCells(row any) []string {
	switch r := row.(type) {
	case nil:
		return nil
	case string:
		return splitCommaList(r)
	case []any:
		if len(r) == 1 {
			if s, ok := r[0].(string); ok && strings.Contains(s, ",") {
				return splitCommaList(s)
			}
		}
		cells := make([]string, 0, len(r))
		for _, cell := range r {
			cells = append(cells, stringify(cell))
		}
		return cells
	default:
		return []string{stringify(r)}
	}
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// stringValue returns m[key] when it is a string, otherwise ""
func stringValue(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// arrayValue returns m[key] when it is an array, otherwise nil
func arrayValue(m map[string]any, key string) []any {
	if a, ok := m[key].([]any); ok {
		return a
	}
	return nil
}

// mapValue returns m[key] when it is an object, otherwise nil
func mapValue(m map[string]any, key string) map[string]any {
	if mm, ok := m[key].(map[string]any); ok {
		return mm
	}
	return nil
}
