package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/compare"
	"github.com/inference-directory/infdir/internal/config"
	"github.com/inference-directory/infdir/internal/dataset"
	"github.com/inference-directory/infdir/internal/format"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/inference-directory/infdir/internal/pubsub"
	"github.com/inference-directory/infdir/internal/search"
	"github.com/inference-directory/infdir/internal/tui/theme"
)

type App struct {
	Dataset  dataset.Service
	Registry catalog.Registry

	cache *search.Cache

	watcherCancelFuncs []context.CancelFunc
	cancelFuncsMutex   sync.Mutex
	watcherWG          sync.WaitGroup
}

// New wires the dataset service, provider registry and search cache for a
// session. A nil source reads the dataset endpoint from the configuration.
func New(ctx context.Context, source dataset.Source) (*App, error) {
	cfg := config.Get()
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	if source == nil {
		source = NewSource(cfg.Dataset)
	}

	registry := catalog.DefaultRegistry.With(cfg.Providers...)
	matcher := search.Matcher{MaxDistance: cfg.Search.MaxDistance}

	app := &App{
		Dataset:  dataset.NewService(dataset.NewFetcher(source, cfg.Dataset.PageSize)),
		Registry: registry,
		cache:    search.NewCache(registry.Aliases(), matcher),
	}

	app.initTheme()
	app.watchSnapshots(ctx)

	return app, nil
}

// initTheme sets the application theme based on the configuration
func (app *App) initTheme() {
	cfg := config.Get()
	if cfg == nil || cfg.TUI.Theme == "" {
		return // Use default theme
	}

	if err := theme.SetTheme(cfg.TUI.Theme); err != nil {
		logging.Warn("Failed to set theme from config, using default theme", "theme", cfg.TUI.Theme, "error", err)
	} else {
		logging.Debug("Set theme from config", "theme", cfg.TUI.Theme)
	}
}

// watchSnapshots builds the search index as soon as a snapshot lands so the
// first keystroke after a refresh does not pay for it.
func (app *App) watchSnapshots(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelFuncsMutex.Lock()
	app.watcherCancelFuncs = append(app.watcherCancelFuncs, cancel)
	app.cancelFuncsMutex.Unlock()

	events := app.Dataset.Subscribe(ctx)
	app.watcherWG.Add(1)
	go func() {
		defer app.watcherWG.Done()
		defer logging.RecoverPanic("snapshot-watcher", nil)
		for ev := range events {
			if ev.Type != pubsub.CreatedEvent && ev.Type != pubsub.UpdatedEvent {
				continue
			}
			app.cache.Engine(ev.Payload.ID, ev.Payload.Records)
			logging.Debug("Indexed dataset snapshot", "id", ev.Payload.ID, "records", len(ev.Payload.Records))
		}
	}()
}

// Refresh fetches a new dataset snapshot.
func (app *App) Refresh(ctx context.Context) (dataset.Snapshot, error) {
	snap, err := app.Dataset.Refresh(ctx)
	if err != nil {
		return snap, err
	}
	logging.Info("Dataset loaded", "records", len(snap.Records))
	return snap, nil
}

// Snapshot returns the current snapshot, fetching the first one on demand.
func (app *App) Snapshot(ctx context.Context) (dataset.Snapshot, error) {
	if snap := app.Dataset.Current(); !snap.Empty() {
		return snap, nil
	}
	return app.Refresh(ctx)
}

// Providers lists the filterable providers of the current snapshot,
// registered providers first.
func (app *App) Providers() []catalog.Provider {
	return catalog.ExtractUniqueProviders(app.Dataset.Current().Records, app.Registry)
}

// Query runs a search against the current snapshot. Provider ids are
// registry ids or observed provider names.
func (app *App) Query(text string, providers []string) []models.Record {
	snap := app.Dataset.Current()
	return app.cache.Engine(snap.ID, snap.Records).Query(text, providers)
}

// Classify buckets value against the peer values of field.
func (app *App) Classify(value models.Optional[float64], peers []float64, field models.Field) compare.Bucket {
	return compare.Classify(value, peers, compare.FieldDirection(field))
}

// FindModel looks a record up by slug: its OpenRouter id, or its name when
// it has no OpenRouter id.
func (app *App) FindModel(slug string) (models.Record, bool) {
	return FindModel(app.Dataset.Current().Records, slug)
}

func FindModel(records []models.Record, slug string) (models.Record, bool) {
	for _, r := range records {
		if r.OpenRouterID != "" && r.OpenRouterID == slug {
			return r, true
		}
	}
	for _, r := range records {
		if r.OpenRouterID == "" && r.Name == slug {
			return r, true
		}
	}
	return models.Record{}, false
}

// CardFigures returns the headline figures of r. With a provider selected
// and offered, each figure comes from that offering, falling back to the
// summary when the offering leaves it unset. Summary costs are the medians
// published with the dataset; context and throughput are recomputed.
func (app *App) CardFigures(r models.Record, providerID string) models.Figures {
	return CardFigures(r, app.Registry, providerID)
}

func CardFigures(r models.Record, registry catalog.Registry, providerID string) models.Figures {
	fig := models.Figures{
		Input:      r.MedianInputCost,
		Output:     r.MedianOutputCost,
		Context:    r.MedianContext(),
		Throughput: r.MedianThroughput(),
	}
	if providerID == "" {
		return fig
	}

	o, ok := selectedOffering(r, registry, providerID)
	if !ok {
		return fig
	}
	fig.Provider = o.Provider
	if o.Input.Valid {
		fig.Input = o.Input
	}
	if o.Output.Valid {
		fig.Output = o.Output
	}
	if o.Context.Valid {
		fig.Context = o.Context.Float()
	}
	if o.Throughput.Valid {
		fig.Throughput = o.Throughput
	}
	return fig
}

func selectedOffering(r models.Record, registry catalog.Registry, providerID string) (models.Offering, bool) {
	key := strings.ToLower(strings.TrimSpace(providerID))
	keys := registry.Aliases()[key]
	if len(keys) == 0 {
		keys = []string{key}
	}
	for _, o := range r.Offerings {
		for _, k := range keys {
			if o.ProviderKey() == k {
				return o, true
			}
		}
	}
	return models.Offering{}, false
}

// RunNonInteractive fetches the dataset, runs one query and prints the
// result to w in the requested format.
func (app *App) RunNonInteractive(ctx context.Context, w io.Writer, text string, providers []string, outputFormat format.OutputFormat, quiet bool) error {
	logging.Info("Running in non-interactive mode")

	var spinner *format.Spinner
	if !quiet {
		spinner = format.NewSpinner("Fetching pricing dataset...")
		spinner.Start()
	}
	_, err := app.Snapshot(ctx)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	out, err := format.Records(app.Query(text, providers), outputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Shutdown stops background watchers and closes event streams.
func (app *App) Shutdown() {
	app.cancelFuncsMutex.Lock()
	for _, cancel := range app.watcherCancelFuncs {
		cancel()
	}
	app.cancelFuncsMutex.Unlock()
	app.watcherWG.Wait()
}
