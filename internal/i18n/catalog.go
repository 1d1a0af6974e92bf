// Package i18n serves localized UI and document strings from catalogs
// embedded in the binary.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a requested language has no catalog.
const DefaultLanguage = "de"

//go:embed *.json
var catalogs embed.FS

// Catalog maps language codes to message tables. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	messages map[string]map[string]string
	fallback string

	// supported lists catalog codes in matcher order, fallback first.
	supported []string
	matcher   language.Matcher
}

// Load reads all embedded catalogs.
func Load() (*Catalog, error) {
	entries, err := catalogs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalogs: %w", err)
	}

	c := &Catalog{messages: make(map[string]map[string]string), fallback: DefaultLanguage}
	for _, e := range entries {
		b, err := catalogs.ReadFile(e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
		c.messages[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = m
	}

	if _, ok := c.messages[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("i18n: missing default catalog %q", DefaultLanguage)
	}

	c.supported = []string{DefaultLanguage}
	for l := range c.messages {
		if l != DefaultLanguage {
			c.supported = append(c.supported, l)
		}
	}
	slices.Sort(c.supported[1:])
	tags := make([]language.Tag, len(c.supported))
	for i, l := range c.supported {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: catalog %q is not a language tag: %w", l, err)
		}
		tags[i] = tag
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Resolve normalizes lang ("en-US", "EN") to a language with a catalog,
// falling back to the default.
func (c *Catalog) Resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := c.messages[lang]; ok {
		return lang
	}
	return c.fallback
}

// Negotiate picks the catalog language that best serves an
// Accept-Language header, honouring q-values. Empty, malformed or
// unmatched headers yield the default language.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.supported[idx]
}

// Messages returns a copy of the message table for lang. Keys missing from
// a non-default catalog are filled from the default one.
func (c *Catalog) Messages(lang string) map[string]string {
	lang = c.Resolve(lang)

	out := maps.Clone(c.messages[c.fallback])
	maps.Copy(out, c.messages[lang])
	return out
}

// T returns the message for key in lang, then in the default language,
// then the key itself.
func (c *Catalog) T(lang, key string) string {
	if s, ok := c.messages[c.Resolve(lang)][key]; ok {
		return s
	}
	if s, ok := c.messages[c.fallback][key]; ok {
		return s
	}
	return key
}

// Languages lists the available language codes.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for l := range c.messages {
		out = append(out, l)
	}
	return out
}
