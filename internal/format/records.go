package format

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const (
	nameWidth   = 40
	authorWidth = 16
	figureWidth = 12
)

// Records renders a result list in the requested format.
func Records(records []models.Record, f OutputFormat) (string, error) {
	switch f {
	case JSON:
		if records == nil {
			records = []models.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal records: %w", err)
		}
		return string(data), nil
	case Markdown:
		return recordsMarkdown(records), nil
	default:
		return recordsText(records), nil
	}
}

func cell(s string, width int) string {
	return padding.String(truncate.StringWithTail(s, uint(width-1), "…"), uint(width))
}

func recordsText(records []models.Record) string {
	var b strings.Builder
	b.WriteString(cell("MODEL", nameWidth))
	b.WriteString(cell("AUTHOR", authorWidth))
	b.WriteString(cell("PROVIDERS", figureWidth))
	b.WriteString(cell("INPUT", figureWidth))
	b.WriteString(cell("OUTPUT", figureWidth))
	b.WriteString(cell("CONTEXT", figureWidth))
	b.WriteString("TOKENS/S\n")
	for _, r := range records {
		b.WriteString(cell(r.Name, nameWidth))
		b.WriteString(cell(r.Author, authorWidth))
		b.WriteString(cell(strconv.Itoa(len(r.Offerings)), figureWidth))
		b.WriteString(cell(Price(r.MedianInputCost), figureWidth))
		b.WriteString(cell(Price(r.MedianOutputCost), figureWidth))
		b.WriteString(cell(ContextWindow(r.MedianContext()), figureWidth))
		b.WriteString(Throughput(r.MedianThroughput()))
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func recordsMarkdown(records []models.Record) string {
	var b strings.Builder
	b.WriteString("| Model | Author | Providers | Input | Output | Context | Tokens/s |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s |\n",
			escapeCell(r.Name),
			escapeCell(r.Author),
			len(r.Offerings),
			Price(r.MedianInputCost),
			Price(r.MedianOutputCost),
			ContextWindow(r.MedianContext()),
			Throughput(r.MedianThroughput()),
		)
	}
	return b.String()
}

// Badge is the short marker printed after a classified figure.
func Badge(b compare.Bucket, dir compare.Direction) string {
	switch compare.GoodnessOf(b, dir) {
	case compare.Good:
		return "▲"
	case compare.Fair:
		return "●"
	case compare.Poor:
		return "▼"
	default:
		return ""
	}
}

func withBadge(figure string, b compare.Bucket, dir compare.Direction) string {
	if badge := Badge(b, dir); badge != "" {
		return figure + " " + badge
	}
	return figure
}

// ModelMarkdown renders a model card: headline figures followed by every
// offering with its price and speed classified against the other offerings.
func ModelMarkdown(r models.Record, fig models.Figures, rows []compare.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)

	var facts []string
	if r.Author != "" {
		author := r.Author
		if a, ok := catalog.LookupAuthor(r.Author); ok && a.Glyph != "" {
			author = a.Glyph + " " + author
		}
		facts = append(facts, "**Author:** "+author)
	}
	if r.OpenRouterID != "" {
		facts = append(facts, "**OpenRouter:** `"+r.OpenRouterID+"`")
	}
	if r.HFID != "" {
		facts = append(facts, "**Hugging Face:** `"+r.HFID+"`")
	}
	if r.IsOpenWeights {
		facts = append(facts, "**Open weights**")
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " · "))
		b.WriteString("\n\n")
	}

	scope := "median across providers"
	if fig.Provider != "" {
		scope = fig.Provider
	}
	fmt.Fprintf(&b, "## Overview (%s)\n\n", scope)
	b.WriteString("| Input $/M | Output $/M | Context | Tokens/s |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		Price(fig.Input), Price(fig.Output), ContextWindow(fig.Context), Throughput(fig.Throughput))

	if r.LowInputCost.Valid || r.HighInputCost.Valid {
		fmt.Fprintf(&b, "Input range %s – %s · Output range %s – %s\n\n",
			Price(r.LowInputCost), Price(r.HighInputCost),
			Price(r.LowOutputCost), Price(r.HighOutputCost))
	}

	if len(rows) == 0 {
		b.WriteString("_No providers listed._\n")
		return b.String()
	}

	b.WriteString("## Providers\n\n")
	b.WriteString("| Provider | Input $/M | Output $/M | Context | Max output | Latency | Tokens/s |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, row := range rows {
		o := row.Offering
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			escapeCell(o.Provider),
			withBadge(Price(o.Input), row.Input, compare.LowerIsBetter),
			withBadge(Price(o.Output), row.Output, compare.LowerIsBetter),
			ContextWindow(o.Context.Float()),
			ContextWindow(o.MaxOutput.Float()),
			Latency(o.Latency),
			withBadge(Throughput(o.Throughput), row.Throughput, compare.HigherIsBetter),
		)
	}
	b.WriteString("\n▲ better than most providers · ● typical · ▼ worse than most providers\n")
	return b.String()
}
