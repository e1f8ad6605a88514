package cmd

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	fields, err := parseFields(defaultClassifyFields)
	require.NoError(t, err)
	assert.Equal(t, []models.Field{models.FieldInput, models.FieldOutput, models.FieldThroughput}, fields)

	_, err = parseFields([]string{"input", "price"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "price"`)
}

func TestCardJSON(t *testing.T) {
	r := models.Record{
		Name:         "GPT-4o",
		OpenRouterID: "openai/gpt-4o",
		Offerings: []models.Offering{
			{Provider: "OpenAI", Input: models.Some(2.5), Output: models.Some(10.0), Throughput: models.Some(90.0)},
		},
	}
	fig := models.Figures{Provider: "OpenAI", Input: models.Some(2.5), Output: models.Some(10.0)}

	out, err := cardJSON(r, fig, compare.ClassifyRecord(r))
	require.NoError(t, err)

	var decoded struct {
		Record  models.Record `json:"record"`
		Figures struct {
			Provider string   `json:"provider"`
			Input    *float64 `json:"input"`
			Context  *float64 `json:"context"`
		} `json:"figures"`
		Ratings []struct {
			Provider string `json:"provider"`
			Field    string `json:"field"`
			Bucket   string `json:"bucket"`
		} `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "openai/gpt-4o", decoded.Record.OpenRouterID)
	assert.Equal(t, "OpenAI", decoded.Figures.Provider)
	require.NotNil(t, decoded.Figures.Input)
	assert.Equal(t, 2.5, *decoded.Figures.Input)
	assert.Nil(t, decoded.Figures.Context)

	require.Len(t, decoded.Ratings, 3)
	for _, rating := range decoded.Ratings {
		assert.Equal(t, "OpenAI", rating.Provider)
		assert.Equal(t, string(compare.Neutral), rating.Bucket)
	}
}
