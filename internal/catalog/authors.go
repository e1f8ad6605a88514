package catalog

import "strings"

// Author is a model publisher with a glyph for cards.
type Author struct {
	ID    string
	Glyph string
}

var authors = []Author{
	{ID: "openai", Glyph: "◎"},
	{ID: "anthropic", Glyph: "✳"},
	{ID: "qwen", Glyph: "Q"},
	{ID: "mistral", Glyph: "M"},
	{ID: "deepseek", Glyph: "D"},
	{ID: "cohere", Glyph: "C"},
	{ID: "google", Glyph: "G"},
	{ID: "meta", Glyph: "∞"},
	{ID: "perplexity-ai", Glyph: "P"},
	{ID: "microsoft", Glyph: "▦"},
}

// LookupAuthor finds the first known author whose id occurs in the record's
// author label, ignoring case. "Meta Llama" matches "meta".
func LookupAuthor(label string) (Author, bool) {
	l := strings.ToLower(label)
	if l == "" {
		return Author{}, false
	}
	for _, a := range authors {
		if strings.Contains(l, a.ID) {
			return a, true
		}
	}
	return Author{}, false
}
