package domain

import "strings"

// NormaliseMenu turns a decoded recommendedMenu value into a list.
// Lists pass through, a string is split on commas with blanks dropped,
// anything else becomes an empty list. The result is never nil.
func NormaliseMenu(value any) []string {
	if list, ok := MenuList(value); ok {
		return list
	}
	if s, ok := value.(string); ok {
		return splitMenu(s)
	}
	return []string{}
}

// MenuList returns value as a list when it already is one. Non-string
// elements of a decoded JSON array are dropped.
func MenuList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

func splitMenu(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
