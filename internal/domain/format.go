package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// HumanizeKey turns a raw field name into a display label:
// "first_name" -> "First Name", "schoolName" -> "School Name".
func HumanizeKey(key string) string {
	var b strings.Builder
	var prev rune
	for i, r := range key {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

// ValueFormatter renders loosely typed form values as readable text.
type ValueFormatter struct {
	True  string
	False string
}

// Format returns the display text for v. Lists are joined with ", ",
// nested objects become "Key: value; Key: value".
func (f ValueFormatter) Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return orDefault(f.True, "yes")
		}
		return orDefault(f.False, "no")
	case []string:
		return joinNonEmpty(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, f.Format(item))
		}
		return joinNonEmpty(parts, ", ")
	case FormData:
		parts := make([]string, 0, t.Len())
		t.Each(func(k string, v any) {
			if s := f.Format(v); s != "" {
				parts = append(parts, HumanizeKey(k)+": "+s)
			}
		})
		return strings.Join(parts, "; ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := f.Format(t[k]); s != "" {
				parts = append(parts, HumanizeKey(k)+": "+s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprint(v)
}

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
