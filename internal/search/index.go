// Package search builds the indices over a dataset snapshot and answers
// combined free-text and provider queries against them.
package search

import (
	"slices"
	"strings"

	"github.com/inference-directory/infdir/internal/models"
)

// Field weights of the fuzzy index. The model name matters most, then the
// author, then the provider names.
const (
	WeightName     = 1.0
	WeightAuthor   = 0.6
	WeightProvider = 0.3
)

// document is the searchable form of one record.
type document struct {
	name      string
	author    string
	providers []string
}

// Index is derived from a snapshot and never changes after Build.
type Index struct {
	records    []models.Record
	byProvider map[string][]int
	aliases    map[string][]string
	docs       []document
}

// Build indexes records. Every record position is listed under each
// lowercased provider name it offers, once. aliases maps a provider key to
// all keys that name the same provider (see catalog.Registry.Aliases); it
// may be nil.
//
// Build is pure: the same records and aliases give an identical Index.
func Build(records []models.Record, aliases map[string][]string) *Index {
	idx := &Index{
		records:    records,
		byProvider: make(map[string][]int),
		aliases:    aliases,
		docs:       make([]document, len(records)),
	}
	for i, r := range records {
		doc := document{
			name:   Fold(r.Name),
			author: Fold(r.Author),
		}
		for _, o := range r.Offerings {
			key := o.ProviderKey()
			if key == "" {
				continue
			}
			doc.providers = append(doc.providers, Fold(key))
			positions := idx.byProvider[key]
			if n := len(positions); n == 0 || positions[n-1] != i {
				idx.byProvider[key] = append(positions, i)
			}
		}
		idx.docs[i] = doc
	}
	return idx
}

// Len returns the number of indexed records.
func (idx *Index) Len() int { return len(idx.records) }

// Positions returns the record positions offered by provider, resolving
// registry aliases. The result is sorted and free of duplicates.
func (idx *Index) Positions(provider string) []int {
	key := strings.ToLower(strings.TrimSpace(provider))
	keys := idx.aliases[key]
	if len(keys) == 0 {
		keys = []string{key}
	}
	if len(keys) == 1 {
		return slices.Clone(idx.byProvider[keys[0]])
	}
	var out []int
	for _, k := range keys {
		out = append(out, idx.byProvider[k]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
