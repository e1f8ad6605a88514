// Package catalog reconciles the providers found in a dataset snapshot with
// the compiled-in registry of known providers.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Provider is an inference vendor as shown in the provider filter.
type Provider struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Glyph string `json:"glyph,omitempty" mapstructure:"glyph"`
}

// Registry is an ordered list of known providers. Order is display order.
type Registry []Provider

// DefaultRegistry holds the providers with curated display names and glyphs.
var DefaultRegistry = Registry{
	{ID: "openai", Name: "OpenAI", Glyph: "◎"},
	{ID: "anthropic", Name: "Anthropic", Glyph: "✳"},
	{ID: "deepmind", Name: "DeepMind", Glyph: "◆"},
	{ID: "together", Name: "Together.ai", Glyph: "▣"},
	{ID: "fireworks", Name: "Fireworks AI", Glyph: "✦"},
}

// With returns a registry with extra appended. Entries whose id is already
// registered are skipped.
func (r Registry) With(extra ...Provider) Registry {
	out := make(Registry, 0, len(r)+len(extra))
	seen := make(map[string]bool, len(r)+len(extra))
	for _, p := range append(append(Registry{}, r...), extra...) {
		id := strings.ToLower(strings.TrimSpace(p.ID))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		p.ID = id
		if p.Name == "" {
			p.Name = capitalize(id)
		}
		out = append(out, p)
	}
	return out
}

// Lookup finds a registered provider by id or display name, ignoring case.
func (r Registry) Lookup(name string) (Provider, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range r {
		if p.matches(key) {
			return p, true
		}
	}
	return Provider{}, false
}

// Aliases maps every lowercased id and display name of the registry to all
// keys naming the same provider. Offerings may spell a registered provider
// either way.
func (r Registry) Aliases() map[string][]string {
	out := make(map[string][]string, len(r)*2)
	for _, p := range r {
		keys := []string{strings.ToLower(p.ID)}
		if name := strings.ToLower(p.Name); name != keys[0] {
			keys = append(keys, name)
		}
		for _, k := range keys {
			out[k] = keys
		}
	}
	return out
}

func (p Provider) matches(key string) bool {
	return key == strings.ToLower(p.ID) || key == strings.ToLower(p.Name)
}

// capitalize upper-cases the first rune only.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
