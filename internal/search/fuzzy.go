package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultMaxDistance is the edit distance tolerated for typo matches.
const DefaultMaxDistance = 2

// Matcher decides whether a query fuzzily matches a field value and how well.
type Matcher struct {
	// MaxDistance caps the edit distance of typo matches. Short queries get
	// less: none below four runes, one below six.
	MaxDistance int
}

// Score rates how well query matches value in (0, 1]; 0 means no match.
// Both are folded first: lowercased, with separators (space, '-', '_',
// '/', '.') collapsed to one space, so "gpt 4o" equals "GPT-4o". Matching
// is tried in order: exact, prefix, substring, in-order subsequence, then a
// typo match of any stretch of value within the edit-distance budget.
func (m Matcher) Score(query, value string) float64 {
	query, value = Fold(query), Fold(value)
	if query == "" || value == "" {
		return 0
	}
	switch {
	case query == value:
		return 1
	case strings.HasPrefix(value, query):
		return 0.9
	case strings.Contains(value, query):
		return 0.8
	}

	if fuzzy.MatchFold(query, value) {
		qn := utf8.RuneCountInString(query)
		gap := fuzzy.RankMatchFold(query, value)
		return 0.6 * float64(qn) / float64(qn+gap)
	}

	budget := min(m.MaxDistance, (utf8.RuneCountInString(query)-2)/2)
	if budget <= 0 {
		return 0
	}
	best := closestWindow(query, value, budget)
	if best < 0 {
		return 0
	}
	return 0.4 * (1 - float64(best)/float64(budget+1))
}

// closestWindow slides windows of the query's length, give or take budget
// runes, over value and returns the smallest edit distance found within
// budget, or -1.
func closestWindow(query, value string, budget int) int {
	q := []rune(query)
	v := []rune(value)
	best := -1
	for size := max(1, len(q)-budget); size <= len(q)+budget; size++ {
		if size > len(v) {
			size = len(v)
		}
		for start := 0; start+size <= len(v); start++ {
			d := fuzzy.LevenshteinDistance(query, string(v[start:start+size]))
			if d <= budget && (best < 0 || d < best) {
				best = d
				if best == 0 {
					return 0
				}
			}
		}
		if size == len(v) {
			break
		}
	}
	return best
}

// Fold lowercases s and collapses every run of separators to one space.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		if isSeparator(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '/', '.':
		return true
	}
	return unicode.IsSpace(r)
}

// scoreDocument is the best weighted field score of doc.
func (m Matcher) scoreDocument(query string, doc document) float64 {
	best := WeightName * m.Score(query, doc.name)
	if s := WeightAuthor * m.Score(query, doc.author); s > best {
		best = s
	}
	for _, p := range doc.providers {
		if s := WeightProvider * m.Score(query, p); s > best {
			best = s
		}
	}
	return best
}
