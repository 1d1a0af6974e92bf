// Package forms holds the registry of known form definitions: the survey
// schema handed to the renderer plus per-form PDF settings.
package forms

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

//go:embed forms.yaml
var defaultRegistry []byte

// Registry is an immutable set of forms keyed by form key. It is safe for
// concurrent use.
type Registry struct {
	forms map[string]*domain.Form
}

type fileFormat struct {
	Forms []formEntry `yaml:"forms"`
}

type formEntry struct {
	Key     string           `yaml:"key"`
	Version string           `yaml:"version"`
	Title   string           `yaml:"title"`
	Theme   string           `yaml:"theme"`
	PDF     domain.PDFConfig `yaml:"pdf"`
	Schema  yaml.Node        `yaml:"schema"`
}

// Load reads the registry from path, or the built-in registry when path
// is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Parse(defaultRegistry)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("forms: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse builds a registry from YAML. A schema may be written either as a
// YAML mapping or as a string holding JSON.
func Parse(b []byte) (*Registry, error) {
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("forms: parse: %w", err)
	}

	r := &Registry{forms: make(map[string]*domain.Form, len(f.Forms))}
	for i, e := range f.Forms {
		if e.Key == "" {
			return nil, fmt.Errorf("forms: entry %d: key is required", i)
		}
		if _, dup := r.forms[e.Key]; dup {
			return nil, fmt.Errorf("forms: duplicate key %q", e.Key)
		}

		schema, err := schemaJSON(&e.Schema)
		if err != nil {
			return nil, fmt.Errorf("forms: %s: schema: %w", e.Key, err)
		}

		r.forms[e.Key] = &domain.Form{
			Key:     e.Key,
			Version: e.Version,
			Title:   e.Title,
			Theme:   e.Theme,
			Schema:  schema,
			PDF:     e.PDF,
		}
	}

	return r, nil
}

func schemaJSON(n *yaml.Node) (json.RawMessage, error) {
	if n.Kind == 0 {
		return json.RawMessage("{}"), nil
	}
	if n.Kind == yaml.ScalarNode {
		if !json.Valid([]byte(n.Value)) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return json.RawMessage(n.Value), nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns the form registered under key, or domain.ErrUnknownForm.
func (r *Registry) Get(key string) (*domain.Form, error) {
	f, ok := r.forms[key]
	if !ok {
		return nil, fmt.Errorf("form %q: %w", key, domain.ErrUnknownForm)
	}
	return f, nil
}

// PDFConfig returns the PDF settings for key. It fails with
// domain.ErrUnknownForm for unknown keys and domain.ErrPDFNotEnabled when
// the form has no confirmation document.
func (r *Registry) PDFConfig(key string) (*domain.PDFConfig, error) {
	f, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	if !f.PDF.Enabled {
		return nil, fmt.Errorf("form %q: %w", key, domain.ErrPDFNotEnabled)
	}
	cfg := f.PDF
	return &cfg, nil
}

// Keys returns all registered form keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.forms))
	for k := range r.forms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
