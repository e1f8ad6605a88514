package catalog

import (
	"github.com/inference-directory/infdir/internal/models"
)

// ExtractUniqueProviders lists the providers that occur in records.
// Registered providers come first in registry order, using the registry's
// display form; every remaining provider name follows in first-seen order
// as a synthesized entry. No provider is listed twice.
func ExtractUniqueProviders(records []models.Record, registry Registry) []Provider {
	var observed []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, o := range r.Offerings {
			key := o.ProviderKey()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			observed = append(observed, key)
		}
	}

	out := make([]Provider, 0, len(observed))
	consumed := make(map[string]bool, len(observed))
	emitted := make(map[string]bool, len(observed))

	for _, p := range registry {
		matched := false
		for _, name := range observed {
			if p.matches(name) {
				consumed[name] = true
				matched = true
			}
		}
		if matched {
			out = append(out, p)
			emitted[p.ID] = true
		}
	}

	for _, name := range observed {
		if consumed[name] || emitted[name] {
			continue
		}
		emitted[name] = true
		out = append(out, Provider{ID: name, Name: capitalize(name)})
	}
	return out
}
