package format

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		wantErr  bool
	}{
		{"text", Text, false},
		{"json", JSON, false},
		{"markdown", Markdown, false},
		{"md", Markdown, false},
		{" TEXT ", Text, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, !tt.wantErr, IsValid(tt.input))
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   models.Optional[float64]
		want string
	}{
		{models.None[float64](), "N/A"},
		{models.Some(0.0), "$0"},
		{models.Some(3.0), "$3"},
		{models.Some(0.15), "$0.15"},
		{models.Some(0.0000126), "$0.000013"},
		{models.Some(10.5), "$10.5"},
		{models.Some(100.0), "$100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.in))
	}
}

func TestContextWindow(t *testing.T) {
	assert.Equal(t, "N/A", ContextWindow(models.None[float64]()))
	assert.Equal(t, "N/A", ContextWindow(models.Some(0.0)))
	assert.Equal(t, "512", ContextWindow(models.Some(512.0)))
	assert.Equal(t, "128K", ContextWindow(models.Some(128000.0)))
	assert.Equal(t, "131K", ContextWindow(models.Some(131072.0)))
	assert.Equal(t, "1000K", ContextWindow(models.Some(1e6)))
}

func TestThroughput(t *testing.T) {
	assert.Equal(t, "N/A", Throughput(models.None[float64]()))
	assert.Equal(t, "N/A", Throughput(models.Some(0.0)))
	assert.Equal(t, "85.3", Throughput(models.Some(85.26)))
	assert.Equal(t, "1.2K", Throughput(models.Some(1234.0)))
	assert.Equal(t, "0.85s", Latency(models.Some(0.85)))
}

func sampleRecord() models.Record {
	return models.Record{
		Name:             "Llama 3.1 70B",
		Author:           "Meta Llama",
		OpenRouterID:     "meta-llama/llama-3.1-70b-instruct",
		MedianInputCost:  models.Some(0.6),
		MedianOutputCost: models.Some(0.8),
		IsOpenWeights:    true,
		Offerings: []models.Offering{
			{Provider: "Together", Input: models.Some(0.88), Output: models.Some(0.88), Context: models.Some[int64](131072), Throughput: models.Some(80.0)},
			{Provider: "Fireworks", Input: models.Some(0.9), Output: models.Some(0.9), Context: models.Some[int64](131072), Throughput: models.Some(120.0)},
		},
	}
}

func TestRecordsText(t *testing.T) {
	out, err := Records([]models.Record{sampleRecord()}, Text)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "MODEL"))
	assert.Contains(t, lines[1], "Llama 3.1 70B")
	assert.Contains(t, lines[1], "$0.6")
	assert.Contains(t, lines[1], "131K")
	assert.Contains(t, lines[1], "100.0")
}

func TestRecordsJSON(t *testing.T) {
	out, err := Records(nil, JSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = Records([]models.Record{sampleRecord()}, JSON)
	require.NoError(t, err)
	var decoded []models.Record
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Llama 3.1 70B", decoded[0].Name)
	assert.Len(t, decoded[0].Offerings, 2)
}

func TestRecordsMarkdown(t *testing.T) {
	r := sampleRecord()
	r.Name = "a|b"
	out, err := Records([]models.Record{r}, Markdown)
	require.NoError(t, err)
	assert.Contains(t, out, `| a\|b | Meta Llama | 2 |`)
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "▲", Badge(compare.Low, compare.LowerIsBetter))
	assert.Equal(t, "▼", Badge(compare.Low, compare.HigherIsBetter))
	assert.Equal(t, "●", Badge(compare.Medium, compare.HigherIsBetter))
	assert.Equal(t, "", Badge(compare.Neutral, compare.LowerIsBetter))
}

func TestModelMarkdown(t *testing.T) {
	r := sampleRecord()
	fig := models.Figures{Input: r.MedianInputCost, Output: r.MedianOutputCost, Context: r.MedianContext(), Throughput: r.MedianThroughput()}
	out := ModelMarkdown(r, fig, compare.ClassifyRecord(r))

	assert.Contains(t, out, "# Llama 3.1 70B")
	assert.Contains(t, out, "∞ Meta Llama")
	assert.Contains(t, out, "**Open weights**")
	assert.Contains(t, out, "median across providers")
	assert.Contains(t, out, "| Together | $0.88 | $0.88 | 131K |")

	fig.Provider = "Together"
	out = ModelMarkdown(models.Record{Name: "empty"}, fig, nil)
	assert.Contains(t, out, "## Overview (Together)")
	assert.Contains(t, out, "_No providers listed._")
}

func TestProviders(t *testing.T) {
	providers := []catalog.Provider{
		{ID: "openai", Name: "OpenAI", Glyph: "◎"},
		{ID: "groq", Name: "Groq"},
	}

	out, err := Providers(providers, Text)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "◎ OpenAI")
	assert.True(t, strings.HasSuffix(lines[2], "Groq"))

	out, err = Providers(nil, JSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = Providers(providers, Markdown)
	require.NoError(t, err)
	assert.Contains(t, out, "| groq | Groq |")
}

func TestClassifications(t *testing.T) {
	items := []Classification{
		NewClassification("Groq", models.FieldInput, models.Some(0.59), compare.Low),
		NewClassification("Slow", models.FieldThroughput, models.Some(20.0), compare.Low),
	}
	assert.Equal(t, "$0.59", items[0].Value)
	assert.Equal(t, "good", items[0].Goodness)
	assert.Equal(t, "poor", items[1].Goodness)

	out, err := Classifications(items, Text)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "LOW ▲"))
	assert.True(t, strings.HasSuffix(lines[2], "LOW ▼"))

	out, err = Classifications(items, JSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"bucket": "LOW"`)
}
