package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inference-directory/infdir/internal/app"
	"github.com/inference-directory/infdir/internal/config"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/pubsub"
	"github.com/inference-directory/infdir/internal/tui"
	"github.com/inference-directory/infdir/internal/version"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "infdir",
	Short: "Search and compare AI model inference pricing",
	Long: `infdir is a terminal directory of AI model inference offerings.
It fetches the open inference pricing dataset, lets you search models by name or author,
filter them by provider and compare each provider's price and speed against the others.`,
	Example: `
  # Run in interactive mode
  infdir

  # Run with debug logging
  infdir -d

  # Search once and print the matching models
  infdir -s llama -P groq -P together

  # Search once with JSON output format
  infdir -s "gpt 4o" -f json

  # Show a model card
  infdir show meta-llama/llama-3.1-70b-instruct --provider groq
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If the help flag is set, show the help message
		if cmd.Flag("help").Changed {
			cmd.Help()
			return nil
		}
		if cmd.Flag("version").Changed {
			fmt.Println(version.Version)
			return nil
		}

		query, _ := cmd.Flags().GetString("search")
		providers, _ := cmd.Flags().GetStringSlice("provider")
		outputFormat, _ := cmd.Flags().GetString("output-format")
		quiet, _ := cmd.Flags().GetBool("quiet")

		parsedOutputFormat, fmtErr := format.Parse(outputFormat)
		if fmtErr != nil {
			return fmt.Errorf("invalid format option: %s\n%s", outputFormat, format.GetHelpText())
		}

		// Create main context for the application
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		interactive := query == "" && len(providers) == 0
		app, err := setupApp(ctx, cmd, interactive)
		if err != nil {
			return err
		}
		defer app.Shutdown()

		// Non-interactive mode
		if !interactive {
			return app.RunNonInteractive(ctx, cmd.OutOrStdout(), query, providers, parsedOutputFormat, quiet)
		}

		// Interactive mode
		zone.NewGlobal()
		program := tea.NewProgram(
			tui.New(app),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)

		// Setup the subscriptions, this will send services events to the TUI
		ch, cancelSubs := setupSubscriptions(app, ctx)

		tuiCtx, tuiCancel := context.WithCancel(ctx)
		var tuiWg sync.WaitGroup
		tuiWg.Add(1)

		go func() {
			defer tuiWg.Done()
			defer logging.RecoverPanic("TUI-message-handler", func() {
				attemptTUIRecovery(program)
			})

			for {
				select {
				case <-tuiCtx.Done():
					logging.Info("TUI message handler shutting down")
					return
				case msg, ok := <-ch:
					if !ok {
						logging.Info("TUI message channel closed")
						return
					}
					program.Send(msg)
				}
			}
		}()

		cleanup := func() {
			app.Shutdown()
			cancelSubs()
			tuiCancel()
			tuiWg.Wait()
			logging.Info("All goroutines cleaned up")
		}

		result, err := program.Run()
		cleanup()

		if err != nil {
			logging.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}

		logging.Info("TUI exited", "result", result)
		return nil
	},
}

// setupApp applies --cwd, loads the configuration and builds the app. It is
// shared by the root command and every subcommand. Outside the TUI, warnings
// and errors are also written to stderr.
func setupApp(ctx context.Context, cmd *cobra.Command, interactive bool) (*app.App, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, _ := cmd.Flags().GetString("cwd")

	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return nil, fmt.Errorf("failed to change directory: %v", err)
		}
	}
	if cwd == "" {
		c, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %v", err)
		}
		cwd = c
	}

	if _, err := config.Load(cwd, debug); err != nil {
		return nil, err
	}
	if !interactive {
		logging.Tee(cmd.ErrOrStderr(), slog.LevelWarn)
	}

	a, err := app.New(ctx, nil)
	if err != nil {
		logging.Error("Failed to create app", "error", err)
		return nil, err
	}
	return a, nil
}

// loadSnapshot fetches the dataset for one-shot subcommands, showing a
// spinner on stderr unless quiet.
func loadSnapshot(ctx context.Context, a *app.App, quiet bool) error {
	var spinner *format.Spinner
	if !quiet {
		spinner = format.NewSpinner("Fetching pricing dataset...")
		spinner.Start()
	}
	snap, err := a.Snapshot(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(snap.Records) == 0 {
		logging.Warn("Dataset is empty")
	}
	return nil
}

// attemptTUIRecovery tries to recover the TUI after a panic
func attemptTUIRecovery(program *tea.Program) {
	logging.Info("Attempting to recover TUI after panic")

	// We could try to restart the TUI or gracefully exit
	// For now, we'll just quit the program to avoid further issues
	program.Quit()
}

func setupSubscriber[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	subscriber func(context.Context) <-chan pubsub.Event[T],
	outputCh chan<- tea.Msg,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer logging.RecoverPanic(fmt.Sprintf("subscription-%s", name), nil)

		subCh := subscriber(ctx)

		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					logging.Info("subscription channel closed", "name", name)
					return
				}

				var msg tea.Msg = event

				select {
				case outputCh <- msg:
				case <-time.After(2 * time.Second):
					logging.Warn("message dropped due to slow consumer", "name", name)
				case <-ctx.Done():
					logging.Info("subscription cancelled", "name", name)
					return
				}
			case <-ctx.Done():
				logging.Info("subscription cancelled", "name", name)
				return
			}
		}
	}()
}

func setupSubscriptions(app *app.App, parentCtx context.Context) (chan tea.Msg, func()) {
	ch := make(chan tea.Msg, 100)

	wg := sync.WaitGroup{}
	ctx, cancel := context.WithCancel(parentCtx) // Inherit from parent context

	setupSubscriber(ctx, &wg, "logging", logging.Subscribe, ch)
	setupSubscriber(ctx, &wg, "dataset", app.Dataset.Subscribe, ch)

	cleanupFunc := func() {
		logging.Info("Cancelling all subscriptions")
		cancel() // Signal all goroutines to stop

		waitCh := make(chan struct{})
		go func() {
			defer logging.RecoverPanic("subscription-cleanup", nil)
			wg.Wait()
			close(waitCh)
		}()

		select {
		case <-waitCh:
			logging.Info("All subscription goroutines completed successfully")
			close(ch) // Only close after all writers are confirmed done
		case <-time.After(5 * time.Second):
			logging.Warn("Timed out waiting for some subscription goroutines to complete")
			close(ch)
		}
	}
	return ch, cleanupFunc
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Hide spinner while fetching the dataset")

	rootCmd.Flags().StringP("search", "s", "", "Query to run in non-interactive mode")
	rootCmd.Flags().StringSliceP("provider", "P", nil, "Only list models offered by these providers (repeatable)")

	rootCmd.PersistentFlags().StringP("output-format", "f", format.Text.String(),
		"Output format for non-interactive output (text, json, markdown)")

	rootCmd.RegisterFlagCompletionFunc("output-format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return format.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(listCmd, providersCmd, showCmd, classifyCmd)
}
