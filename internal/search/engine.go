package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/inference-directory/infdir/internal/models"
)

// Engine answers queries against one Index. It holds no mutable state, so
// a query is a pure function of the index and its arguments.
type Engine struct {
	index   *Index
	matcher Matcher
}

func NewEngine(index *Index, matcher Matcher) *Engine {
	if matcher.MaxDistance <= 0 {
		matcher.MaxDistance = DefaultMaxDistance
	}
	return &Engine{index: index, matcher: matcher}
}

// Query returns the records matching text and providers.
//
//   - Neither given: all records, most offerings first.
//   - Providers only: the union of records offered by any of them, most
//     offerings first, each record once.
//   - Text only: fuzzy matches, best first.
//   - Both: the fuzzy matches, best first, that are also in the provider union.
//
// Provider ids match exactly, ignoring case. Ties keep dataset order.
func (e *Engine) Query(text string, providers []string) []models.Record {
	text = strings.ToLower(strings.TrimSpace(text))
	selected := normalizeIDs(providers)

	var union map[int]bool
	if len(selected) > 0 {
		union = e.providerUnion(selected)
	}

	if text == "" {
		var positions []int
		if union == nil {
			positions = make([]int, e.index.Len())
			for i := range positions {
				positions[i] = i
			}
		} else {
			positions = make([]int, 0, len(union))
			for i := range union {
				positions = append(positions, i)
			}
			slices.Sort(positions)
		}
		e.sortByOfferings(positions)
		return e.collect(positions)
	}

	matches := e.fuzzyMatches(text)
	if union == nil {
		return e.collect(matches)
	}
	filtered := matches[:0]
	for _, i := range matches {
		if union[i] {
			filtered = append(filtered, i)
		}
	}
	return e.collect(filtered)
}

func (e *Engine) providerUnion(ids []string) map[int]bool {
	union := make(map[int]bool)
	for _, id := range ids {
		for _, i := range e.index.Positions(id) {
			union[i] = true
		}
	}
	return union
}

type scored struct {
	pos   int
	score float64
}

func (e *Engine) fuzzyMatches(text string) []int {
	var hits []scored
	for i, doc := range e.index.docs {
		if s := e.matcher.scoreDocument(text, doc); s > 0 {
			hits = append(hits, scored{pos: i, score: s})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.pos
	}
	return out
}

func (e *Engine) sortByOfferings(positions []int) {
	slices.SortStableFunc(positions, func(a, b int) int {
		return cmp.Compare(len(e.index.records[b].Offerings), len(e.index.records[a].Offerings))
	})
}

func (e *Engine) collect(positions []int) []models.Record {
	out := make([]models.Record, 0, len(positions))
	for _, i := range positions {
		out = append(out, e.index.records[i])
	}
	return out
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
