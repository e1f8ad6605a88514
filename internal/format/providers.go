package format

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/models"
)

const idWidth = 24

// Providers renders the provider filter list.
func Providers(providers []catalog.Provider, f OutputFormat) (string, error) {
	switch f {
	case JSON:
		if providers == nil {
			providers = []catalog.Provider{}
		}
		data, err := json.MarshalIndent(providers, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal providers: %w", err)
		}
		return string(data), nil
	case Markdown:
		var b strings.Builder
		b.WriteString("| ID | Name |\n|---|---|\n")
		for _, p := range providers {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(p.ID), escapeCell(label(p)))
		}
		return b.String(), nil
	default:
		var b strings.Builder
		b.WriteString(cell("ID", idWidth))
		b.WriteString("NAME\n")
		for _, p := range providers {
			b.WriteString(cell(p.ID, idWidth))
			b.WriteString(label(p))
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}

func label(p catalog.Provider) string {
	if p.Glyph == "" {
		return p.Name
	}
	return p.Glyph + " " + p.Name
}

// Classification is one classified figure as printed by the classify command.
type Classification struct {
	Provider string         `json:"provider,omitempty"`
	Field    models.Field   `json:"field"`
	Value    string         `json:"value"`
	Bucket   compare.Bucket `json:"bucket"`
	Goodness string         `json:"goodness,omitempty"`
}

// NewClassification labels value of field with its bucket.
func NewClassification(provider string, field models.Field, value models.Optional[float64], b compare.Bucket) Classification {
	dir := compare.FieldDirection(field)
	return Classification{
		Provider: provider,
		Field:    field,
		Value:    Figure(field, value),
		Bucket:   b,
		Goodness: string(compare.GoodnessOf(b, dir)),
	}
}

// Figure formats value the way field is displayed.
func Figure(field models.Field, value models.Optional[float64]) string {
	switch field {
	case models.FieldInput, models.FieldOutput:
		return Price(value)
	case models.FieldContext, models.FieldMaxOutput:
		return ContextWindow(value)
	case models.FieldLatency:
		return Latency(value)
	default:
		return Throughput(value)
	}
}

// Classifications renders classify results.
func Classifications(items []Classification, f OutputFormat) (string, error) {
	switch f {
	case JSON:
		if items == nil {
			items = []Classification{}
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal classifications: %w", err)
		}
		return string(data), nil
	case Markdown:
		var b strings.Builder
		b.WriteString("| Provider | Field | Value | Bucket |\n|---|---|---:|---|\n")
		for _, c := range items {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escapeCell(c.Provider), c.Field, c.Value, withBadge(string(c.Bucket), c.Bucket, compare.FieldDirection(c.Field)))
		}
		return b.String(), nil
	default:
		var b strings.Builder
		b.WriteString(cell("PROVIDER", idWidth))
		b.WriteString(cell("FIELD", figureWidth))
		b.WriteString(cell("VALUE", figureWidth))
		b.WriteString("BUCKET\n")
		for _, c := range items {
			b.WriteString(cell(c.Provider, idWidth))
			b.WriteString(cell(string(c.Field), figureWidth))
			b.WriteString(cell(c.Value, figureWidth))
			b.WriteString(withBadge(string(c.Bucket), c.Bucket, compare.FieldDirection(c.Field)))
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}
