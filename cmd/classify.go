package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/spf13/cobra"
)

var defaultClassifyFields = []string{
	string(models.FieldInput),
	string(models.FieldOutput),
	string(models.FieldThroughput),
}

var classifyCmd = &cobra.Command{
	Use:   "classify [slug]",
	Short: "Rate figures against their peers as LOW, MEDIUM or HIGH",
	Long: `Classify every provider offering of a model against the other offerings of
the same model, one field at a time. With --value and --peers no dataset is
fetched and the single value is classified against the given peer values.

Peer groups with fewer than four usable values are NEUTRAL.`,
	Example: `
  # Rate every provider of a model on input, output and throughput
  infdir classify meta-llama/llama-3.1-70b-instruct

  # Rate latency only
  infdir classify meta-llama/llama-3.1-70b-instruct --field latency

  # Rate an arbitrary value
  infdir classify --value 0.5 --peers 0.4,0.6,0.55,0.45 --field input
  `,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output-format")
		quiet, _ := cmd.Flags().GetBool("quiet")
		fieldNames, _ := cmd.Flags().GetStringSlice("field")

		f, err := format.Parse(outputFormat)
		if err != nil {
			return fmt.Errorf("invalid format option: %s\n%s", outputFormat, format.GetHelpText())
		}
		fields, err := parseFields(fieldNames)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a, err := setupApp(ctx, cmd, false)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		var items []format.Classification
		if cmd.Flags().Changed("value") {
			if len(args) > 0 {
				return fmt.Errorf("--value cannot be combined with a model slug")
			}
			value, _ := cmd.Flags().GetFloat64("value")
			peers, _ := cmd.Flags().GetFloat64Slice("peers")
			for _, field := range fields {
				v := models.Some(value)
				items = append(items, format.NewClassification("", field, v, a.Classify(v, peers, field)))
			}
		} else {
			if len(args) == 0 {
				return fmt.Errorf("a model slug or --value is required")
			}
			if err := loadSnapshot(ctx, a, quiet); err != nil {
				return err
			}
			r, ok := a.FindModel(args[0])
			if !ok {
				return fmt.Errorf("model %q not found", args[0])
			}
			for _, o := range r.Offerings {
				for _, field := range fields {
					items = append(items, format.NewClassification(o.Provider, field, o.Metric(field), compare.ClassifyField(o, r.Offerings, field)))
				}
			}
		}

		out, err := format.Classifications(items, f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func parseFields(names []string) ([]models.Field, error) {
	fields := make([]models.Field, 0, len(names))
	for _, name := range names {
		field, ok := models.ParseField(name)
		if !ok {
			valid := make([]string, 0, len(models.Fields))
			for _, f := range models.Fields {
				valid = append(valid, string(f))
			}
			return nil, fmt.Errorf("unknown field %q, expected one of %s", name, strings.Join(valid, ", "))
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func init() {
	classifyCmd.Flags().StringSlice("field", defaultClassifyFields, "Fields to classify (context, max_output, input, output, latency, throughput)")
	classifyCmd.Flags().Float64("value", 0, "Value to classify instead of a model's offerings")
	classifyCmd.Flags().Float64Slice("peers", nil, "Peer values the --value is compared against")
}
