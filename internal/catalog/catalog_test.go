package catalog

import (
	"testing"

	"github.com/inference-directory/infdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(providers ...[]string) []models.Record {
	var out []models.Record
	for i, names := range providers {
		r := models.Record{Name: string(rune('a' + i))}
		for _, n := range names {
			r.Offerings = append(r.Offerings, models.Offering{Provider: n})
		}
		out = append(out, r)
	}
	return out
}

func ids(ps []Provider) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestExtractUniqueProvidersOrder(t *testing.T) {
	recs := records(
		[]string{"Groq", "fireworks ai", "DeepInfra"},
		[]string{"OPENAI", "groq", "Lambda"},
		nil,
	)

	got := ExtractUniqueProviders(recs, DefaultRegistry)
	assert.Equal(t, []string{"openai", "fireworks", "groq", "deepinfra", "lambda"}, ids(got))

	require.Len(t, got, 5)
	assert.Equal(t, "OpenAI", got[0].Name, "registered providers keep the registry display name")
	assert.Equal(t, "Fireworks AI", got[1].Name)
	assert.Equal(t, "Groq", got[2].Name)
	assert.Equal(t, "Deepinfra", got[3].Name, "only the first rune is upper-cased")
	assert.Empty(t, got[2].Glyph)
}

func TestExtractUniqueProvidersNoDuplicates(t *testing.T) {
	// both spellings of a registered provider collapse into one entry
	recs := records([]string{"Together.ai", "together", "TOGETHER"})
	got := ExtractUniqueProviders(recs, DefaultRegistry)
	require.Len(t, got, 1)
	assert.Equal(t, Provider{ID: "together", Name: "Together.ai", Glyph: "▣"}, got[0])
}

func TestExtractUniqueProvidersEmpty(t *testing.T) {
	assert.Empty(t, ExtractUniqueProviders(nil, DefaultRegistry))
	assert.Empty(t, ExtractUniqueProviders(records(nil, []string{" "}), DefaultRegistry))
}

func TestRegistryWith(t *testing.T) {
	r := DefaultRegistry.With(
		Provider{ID: "Groq", Name: "Groq Cloud"},
		Provider{ID: "openai", Name: "dup"},
		Provider{ID: "cerebras"},
	)
	assert.Len(t, r, len(DefaultRegistry)+2)

	p, ok := r.Lookup("groq cloud")
	require.True(t, ok)
	assert.Equal(t, "groq", p.ID)

	p, ok = r.Lookup("CEREBRAS")
	require.True(t, ok)
	assert.Equal(t, "Cerebras", p.Name)

	p, ok = r.Lookup("openai")
	require.True(t, ok)
	assert.Equal(t, "OpenAI", p.Name)
}

func TestRegistryAliases(t *testing.T) {
	a := DefaultRegistry.Aliases()
	assert.Equal(t, []string{"fireworks", "fireworks ai"}, a["fireworks"])
	assert.Equal(t, []string{"fireworks", "fireworks ai"}, a["fireworks ai"])
	assert.Equal(t, []string{"openai"}, a["openai"])
}

func TestLookupAuthor(t *testing.T) {
	a, ok := LookupAuthor("Meta Llama")
	require.True(t, ok)
	assert.Equal(t, "meta", a.ID)

	_, ok = LookupAuthor("")
	assert.False(t, ok)
	_, ok = LookupAuthor("Nous Research")
	assert.False(t, ok)
}
