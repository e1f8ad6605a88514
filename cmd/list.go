package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/inference-directory/infdir/internal/format"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List models matching a query",
	Long: `List the models of the pricing dataset. Words given as arguments form a
fuzzy query over model names and authors; --provider keeps models offered by any
of the named providers.`,
	Example: `
  # Every model, as JSON
  infdir list -f json

  # Llama models served by Groq or Together
  infdir list llama -P groq,together
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output-format")
		quiet, _ := cmd.Flags().GetBool("quiet")
		providers, _ := cmd.Flags().GetStringSlice("provider")

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

		return a.RunNonInteractive(ctx, cmd.OutOrStdout(), strings.Join(args, " "), providers, f, quiet)
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the providers found in the dataset",
	Long: `List every provider offering at least one model. Registered providers come
first with their display names; other providers follow as they appear in the dataset.
The ids printed here are accepted by --provider.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output-format")
		quiet, _ := cmd.Flags().GetBool("quiet")

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
		out, err := format.Providers(a.Providers(), f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	listCmd.Flags().StringSliceP("provider", "P", nil, "Only list models offered by these providers (repeatable)")
}
