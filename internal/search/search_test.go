package search

import (
	"testing"

	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name, author string, providers ...string) models.Record {
	r := models.Record{Name: name, Author: author}
	for _, p := range providers {
		r.Offerings = append(r.Offerings, models.Offering{Provider: p})
	}
	return r
}

func names(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

// A offers m1 and m2, B offers m2 and m3.
func composition() []models.Record {
	return []models.Record{
		record("Llama 3.1 70B", "Meta", "A"),
		record("Qwen 2.5 72B", "Alibaba", "A", "b"),
		record("DeepSeek V3", "DeepSeek", "B"),
		record("Mistral Large", "Mistral", "C"),
	}
}

func TestBuildReverseIndex(t *testing.T) {
	recs := []models.Record{
		record("one", "", "Acme", "acme", "Beta"),
		record("two", "", "ACME"),
		record("three", ""),
	}
	idx := Build(recs, nil)

	assert.Equal(t, []int{0, 1}, idx.Positions("acme"))
	assert.Equal(t, []int{0, 1}, idx.Positions(" Acme "))
	assert.Equal(t, []int{0}, idx.Positions("beta"))
	assert.Empty(t, idx.Positions("gamma"))
	assert.Equal(t, 3, idx.Len())

	assert.Equal(t, idx, Build(recs, nil), "building twice yields the same index")
}

func TestPositionsResolvesAliases(t *testing.T) {
	recs := []models.Record{
		record("a", "", "Fireworks AI"),
		record("b", "", "fireworks"),
		record("c", "", "Together"),
	}
	idx := Build(recs, catalog.DefaultRegistry.Aliases())
	assert.Equal(t, []int{0, 1}, idx.Positions("fireworks"))
	assert.Equal(t, []int{0, 1}, idx.Positions("Fireworks AI"))
	assert.Equal(t, []int{2}, idx.Positions("together"))
}

func TestQueryNoFilters(t *testing.T) {
	e := NewEngine(Build(composition(), nil), Matcher{})
	got := e.Query("  ", nil)
	assert.Equal(t, []string{"Qwen 2.5 72B", "Llama 3.1 70B", "DeepSeek V3", "Mistral Large"}, names(got))

	assert.Equal(t, names(got), names(e.Query("", []string{"", "  "})), "blank ids count as no selection")
}

func TestQueryProviderUnion(t *testing.T) {
	e := NewEngine(Build(composition(), nil), Matcher{})

	got := e.Query("", []string{"A", "b"})
	assert.Equal(t, []string{"Qwen 2.5 72B", "Llama 3.1 70B", "DeepSeek V3"}, names(got))

	got = e.Query("", []string{"a", "A"})
	assert.Equal(t, []string{"Qwen 2.5 72B", "Llama 3.1 70B"}, names(got))

	assert.Empty(t, e.Query("", []string{"unknown"}))
}

func TestQueryProviderMatchingIsExact(t *testing.T) {
	recs := []models.Record{record("x", "", "Groq"), record("y", "", "Grok")}
	e := NewEngine(Build(recs, nil), Matcher{})
	assert.Equal(t, []string{"x"}, names(e.Query("", []string{"groq"})))
	assert.Empty(t, e.Query("", []string{"gro"}))
}

func TestQueryIntersection(t *testing.T) {
	e := NewEngine(Build(composition(), nil), Matcher{})

	got := e.Query("qwen", []string{"A", "B"})
	assert.Equal(t, []string{"Qwen 2.5 72B"}, names(got))

	assert.Empty(t, e.Query("mistral", []string{"A", "B"}), "text match outside the provider union")
}

func TestQueryTextOnly(t *testing.T) {
	recs := []models.Record{
		record("GPT-4o mini", "OpenAI", "Azure"),
		record("Mixtral 8x7B", "Mistral", "Together"),
		record("Mistral Large", "Mistral", "Mistral"),
		record("Claude 3.5 Sonnet", "Anthropic", "Bedrock"),
	}
	e := NewEngine(Build(recs, nil), Matcher{})

	t.Run("name outranks author", func(t *testing.T) {
		got := e.Query("mistral", nil)
		require.NotEmpty(t, got)
		assert.Equal(t, "Mistral Large", got[0].Name)
		assert.Contains(t, names(got), "Mixtral 8x7B")
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Claude 3.5 Sonnet"}, names(e.Query("SONNET", nil)))
	})

	t.Run("provider name", func(t *testing.T) {
		assert.Equal(t, []string{"Claude 3.5 Sonnet"}, names(e.Query("bedrock", nil)))
	})

	t.Run("typo", func(t *testing.T) {
		assert.Equal(t, []string{"Claude 3.5 Sonnet"}, names(e.Query("sonet", nil)))
		assert.Equal(t, []string{"Claude 3.5 Sonnet"}, names(e.Query("claudee", nil)))
	})

	t.Run("single character", func(t *testing.T) {
		assert.NotEmpty(t, e.Query("x", nil))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, e.Query("zzzz", nil))
	})
}

func TestQueryIdempotent(t *testing.T) {
	e := NewEngine(Build(composition(), nil), Matcher{})
	for _, tc := range []struct {
		text string
		ids  []string
	}{
		{"", nil},
		{"", []string{"a", "b"}},
		{"l", nil},
		{"qwen", []string{"a"}},
	} {
		first := e.Query(tc.text, tc.ids)
		second := e.Query(tc.text, tc.ids)
		assert.Equal(t, first, second)
	}
}

func TestQueryDoesNotMutateSelection(t *testing.T) {
	e := NewEngine(Build(composition(), nil), Matcher{})
	ids := []string{" B", "A"}
	e.Query("qwen", ids)
	assert.Equal(t, []string{" B", "A"}, ids)
}

func TestMatcherScore(t *testing.T) {
	m := Matcher{MaxDistance: DefaultMaxDistance}
	assert.Equal(t, 1.0, m.Score("sonnet", "sonnet"))
	assert.Equal(t, 0.9, m.Score("son", "sonnet"))
	assert.Equal(t, 0.8, m.Score("net", "sonnet"))
	assert.Greater(t, m.Score("snt", "sonnet"), 0.0)
	assert.Less(t, m.Score("snt", "sonnet"), 0.6)
	assert.Equal(t, 0.0, m.Score("", "sonnet"))
	assert.Equal(t, 0.0, m.Score("abc", ""))

	// three-letter queries get no typo budget
	assert.Equal(t, 0.0, m.Score("gtp", "gpt"))
	// four letters allow one edit
	assert.Greater(t, m.Score("llamq", "llama 3"), 0.0)
}

func TestQueryIgnoresSeparators(t *testing.T) {
	recs := []models.Record{
		record("GPT-4o", "OpenAI", "OpenAI"),
		record("Llama-3.1-70B-Instruct", "Meta", "Groq"),
		record("Claude 3.5 Sonnet", "Anthropic", "Bedrock"),
	}
	e := NewEngine(Build(recs, nil), Matcher{})

	tests := []struct {
		query string
		want  string
	}{
		{"gpt 4o", "GPT-4o"},
		{"gpt4o", "GPT-4o"},
		{"gpt_4o", "GPT-4o"},
		{"llama 3.1", "Llama-3.1-70B-Instruct"},
		{"llama/3.1 70b", "Llama-3.1-70B-Instruct"},
		{"claude-3.5", "Claude 3.5 Sonnet"},
		{"cluade", "Claude 3.5 Sonnet"},
		{"claude 3.5 sonet", "Claude 3.5 Sonnet"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := e.Query(tt.query, nil)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, got[0].Name)
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "gpt 4o", Fold("GPT-4o"))
	assert.Equal(t, "llama 3 1 70b", Fold("  Llama--3.1 / 70B "))
	assert.Equal(t, "a b", Fold("a_\tb"))
	assert.Equal(t, "", Fold(" -_/. "))
}

func TestMatcherScoreTypoSpansWords(t *testing.T) {
	m := Matcher{MaxDistance: DefaultMaxDistance}
	assert.Greater(t, m.Score("claude 3 sonet", "claude 3.5 sonnet"), 0.0)
	assert.Greater(t, m.Score("cluade", "claude 3.5 sonnet"), 0.0)
	assert.Equal(t, 0.0, m.Score("zzzzzz", "claude 3.5 sonnet"))
}

func TestCacheRebuildsOnlyOnNewSnapshot(t *testing.T) {
	c := NewCache(nil, Matcher{})
	recs := composition()

	e1 := c.Engine("snap-1", recs)
	e2 := c.Engine("snap-1", recs)
	assert.Same(t, e1, e2)
	assert.Equal(t, 1, c.Builds())

	e3 := c.Engine("snap-2", recs[:1])
	assert.NotSame(t, e1, e3)
	assert.Equal(t, 2, c.Builds())
	assert.Len(t, e3.Query("", nil), 1)
}
