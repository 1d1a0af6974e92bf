package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FormData is an ordered string-keyed mapping of loosely typed form
// answers. Values are one of: nil, string, bool, json.Number, float64,
// []any, FormData. Decoding from JSON keeps the document's key order and
// produces json.Number for numbers.
//
// The zero value is an empty, usable mapping.
type FormData struct {
	keys   []string
	values map[string]any
}

// NewFormData builds a FormData from alternating key/value pairs in order.
func NewFormData(pairs ...any) FormData {
	var d FormData
	for i := 0; i+1 < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			continue
		}
		d.Set(k, pairs[i+1])
	}
	return d
}

// Set stores v under key. An existing key keeps its position.
func (d *FormData) Set(key string, v any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d FormData) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d FormData) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d FormData) Len() int { return len(d.keys) }

// Each calls fn for each entry in order.
func (d FormData) Each(fn func(key string, v any)) {
	for _, k := range d.keys {
		fn(k, d.values[k])
	}
}

// ToMap returns a plain map copy; nested FormData values are converted too.
func (d FormData) ToMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = plain(d.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case FormData:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plain(t[i])
		}
		return out
	}
	return v
}

// FirstNonEmpty consults keys in order and returns the first value that is
// a non-blank string (or number), trimmed. It returns "" when none match.
func (d FormData) FirstNonEmpty(keys []string) string {
	for _, k := range keys {
		v, ok := d.values[k]
		if !ok {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// MarshalJSON encodes the mapping as a JSON object in key order.
func (d FormData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("form data key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. JSON null
// yields an empty mapping.
func (d *FormData) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = FormData{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("form data: expected JSON object, got %v", tok)
	}

	out, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// decodeObject reads members until the closing brace. The opening brace
// must already be consumed.
func decodeObject(dec *json.Decoder) (FormData, error) {
	var out FormData
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return FormData{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return FormData{}, fmt.Errorf("form data: unexpected key token %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return FormData{}, err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return FormData{}, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("form data: unexpected delimiter %v", delim)
}

// ParseFormData decodes raw JSON into FormData. Empty input yields an
// empty mapping.
func ParseFormData(raw []byte) (FormData, error) {
	var d FormData
	if len(bytes.TrimSpace(raw)) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return FormData{}, err
	}
	return d, nil
}
