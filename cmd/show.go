package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const cardWordWrap = 100

type modelCard struct {
	Record  models.Record           `json:"record"`
	Figures models.Figures          `json:"figures"`
	Ratings []format.Classification `json:"ratings"`
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a model card",
	Long: `Show one model with its headline figures and every provider offering, each
classified against the other providers of the model. The slug is the model's
OpenRouter id, or its name when it has none.`,
	Example: `
  # Median figures across providers
  infdir show openai/gpt-4o

  # Figures for one provider's offering
  infdir show meta-llama/llama-3.1-70b-instruct --provider groq
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output-format")
		quiet, _ := cmd.Flags().GetBool("quiet")
		provider, _ := cmd.Flags().GetString("provider")

		f, err := format.Parse(outputFormat)
		if err != nil {
			return fmt.Errorf("invalid format option: %s\n%s", outputFormat, format.GetHelpText())
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a, err := setupApp(ctx, cmd, false)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		if err := loadSnapshot(ctx, a, quiet); err != nil {
			return err
		}

		r, ok := a.FindModel(args[0])
		if !ok {
			return fmt.Errorf("model %q not found", args[0])
		}
		fig := a.CardFigures(r, provider)
		if provider != "" && fig.Provider == "" {
			logging.Warn("Provider does not offer this model, showing medians", "provider", provider, "model", r.Name)
		}
		rows := compare.ClassifyRecord(r)

		var out string
		switch f {
		case format.JSON:
			out, err = cardJSON(r, fig, rows)
		case format.Markdown:
			out = format.ModelMarkdown(r, fig, rows)
		default:
			out, err = renderMarkdown(cmd, format.ModelMarkdown(r, fig, rows))
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func cardJSON(r models.Record, fig models.Figures, rows []compare.Row) (string, error) {
	card := modelCard{
		Record:  r,
		Figures: fig,
		Ratings: ratings(rows),
	}
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal model card: %w", err)
	}
	return string(data), nil
}

func ratings(rows []compare.Row) []format.Classification {
	out := make([]format.Classification, 0, len(rows)*3)
	for _, row := range rows {
		o := row.Offering
		out = append(out,
			format.NewClassification(o.Provider, models.FieldInput, o.Input, row.Input),
			format.NewClassification(o.Provider, models.FieldOutput, o.Output, row.Output),
			format.NewClassification(o.Provider, models.FieldThroughput, o.Throughput, row.Throughput),
		)
	}
	return out
}

// renderMarkdown styles md for the terminal. Output that is not a terminal
// gets the markdown unchanged.
func renderMarkdown(cmd *cobra.Command, md string) (string, error) {
	output := termenv.NewOutput(cmd.OutOrStdout())
	if output.Profile == termenv.Ascii {
		return md, nil
	}

	style := glamourstyles.LightStyle
	if output.HasDarkBackground() {
		style = glamourstyles.DarkStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(cardWordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}

func init() {
	showCmd.Flags().StringP("provider", "P", "", "Show figures for this provider's offering")
}
