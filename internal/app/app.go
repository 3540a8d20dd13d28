// Package app wires the configured pipeline together and drives a run: a
// one-shot build with an optional grammar report, or a watch loop with an
// optional preview server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"markwright/internal/build"
	"markwright/internal/checker"
	"markwright/internal/config"
	"markwright/internal/contextutil"
	"markwright/internal/dictionary"
	"markwright/internal/languagetool"
	"markwright/internal/preview"
	"markwright/internal/storage"
	"markwright/internal/watch"
)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	NewSegmentChecker func(*config.Settings) (checker.SegmentChecker, func(), error)
	Stdout            io.Writer
	Stderr            io.Writer
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:      config.LoadSettingsWithFlags,
		ValidSettings:     config.ValidateSettings,
		NewSegmentChecker: NewSegmentChecker,
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	}
}

// NewSegmentChecker builds the remote grammar client, wrapped in the
// persistent result cache when one is configured. The returned cleanup
// closes the cache database and may be nil.
func NewSegmentChecker(settings *config.Settings) (checker.SegmentChecker, func(), error) {
	client := languagetool.NewClient(settings.Endpoint, settings.Language, settings.Level, settings.Timeout)
	if settings.Cache == "" {
		return client, nil, nil
	}

	db, err := storage.New(settings.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	cleanup := func() {
		_ = db.Close()
	}
	cached := storage.NewCachingChecker(client, storage.NewCheckRepo(db), settings.Language, settings.Level)
	return cached, cleanup, nil
}

// RunWithDeps executes a run over inputPath with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, inputPath string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging on stderr so the report on stdout stays clean
	logger := newLogger(params.Stderr, settings)
	slog.SetDefault(logger)
	ctx = contextutil.WithLogger(ctx, logger)
	logger.DebugContext(ctx, "logging configured", "level", settings.LogLevel, "format", settings.LogFormat)

	outputPath := settings.Output
	if outputPath == "" {
		outputPath = build.DefaultOutputPath(inputPath)
	}

	builder := build.NewBuilder(build.Options{
		CanonicalURL: settings.CanonicalURL,
		SearchTerm:   settings.SearchTerm,
		LiveReload:   settings.Serve,
	})

	var proof *proofreader
	if settings.Grammar {
		segmentChecker, cleanup, err := params.NewSegmentChecker(settings)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}
		proof = newProofreader(segmentChecker, settings, params.Stdout)
	}

	if !settings.Watch {
		return runBuild(ctx, builder, proof, inputPath, outputPath)
	}
	return runWatch(ctx, settings, builder, proof, inputPath, outputPath)
}

func newLogger(w io.Writer, settings *config.Settings) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	}
	var handler slog.Handler
	if settings.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// proofreader bundles the orchestrator with the report post-processing
// steps: dictionary filtering and terminal rendering.
type proofreader struct {
	checker   *checker.Checker
	dictPath  string
	presenter *checker.Presenter
}

func newProofreader(segmentChecker checker.SegmentChecker, settings *config.Settings, stdout io.Writer) *proofreader {
	return &proofreader{
		checker:   checker.NewChecker(segmentChecker, settings.MaxSegment, settings.Concurrency),
		dictPath:  settings.Dictionary,
		presenter: checker.NewPresenter(stdout),
	}
}

// Check proofreads plain and renders the filtered report for path.
func (p *proofreader) Check(ctx context.Context, path, plain string) error {
	report, err := p.checker.CheckDocument(ctx, plain)
	if err != nil {
		return err
	}

	// The dictionary is reloaded each run so words accepted while watching
	// take effect on the next rebuild.
	dict, err := dictionary.Load(p.dictPath)
	if err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "failed to load dictionary", "path", p.dictPath, "error", err)
	} else {
		dict.FilterReport(report)
	}

	return p.presenter.Render(path, report)
}

// runBuild renders the document once and, when a proofreader is configured,
// checks it and prints the report.
func runBuild(ctx context.Context, builder *build.Builder, proof *proofreader, inputPath, outputPath string) error {
	result, err := builder.Build(ctx, inputPath, outputPath)
	if err != nil {
		return err
	}
	if proof == nil {
		return nil
	}
	return proof.Check(ctx, inputPath, result.Plaintext)
}

// runWatch builds once up front, then keeps rebuilding on file changes until
// the context is cancelled. With serve enabled it also runs the preview
// server and broadcasts a reload after every successful rebuild.
func runWatch(ctx context.Context, settings *config.Settings, builder *build.Builder, proof *proofreader, inputPath, outputPath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	// The first build is fatal on error so a bad input path or broken
	// frontmatter surfaces immediately instead of after the first save.
	if err := runBuild(ctx, builder, proof, inputPath, outputPath); err != nil {
		return err
	}

	watcher, err := watch.NewWatcher(inputPath)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", inputPath, err)
	}

	var server *preview.Server
	if settings.Serve {
		server = preview.NewServer(settings.Addr, outputPath)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(ctx)
	})
	if server != nil {
		g.Go(func() error {
			return server.Run(ctx)
		})
	}
	g.Go(func() error {
		return rebuildLoop(ctx, builder, proof, watcher, server, inputPath, outputPath)
	})

	logger.InfoContext(ctx, "watching for changes", "file", inputPath)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.InfoContext(ctx, "stopped")
	return nil
}

func rebuildLoop(ctx context.Context, builder *build.Builder, proof *proofreader, watcher *watch.Watcher, server *preview.Server, inputPath, outputPath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-watcher.Changes():
			if err := runBuild(ctx, builder, proof, inputPath, outputPath); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// A broken intermediate save state should not end the watch.
				logger.ErrorContext(ctx, "rebuild failed", "file", inputPath, "error", err)
				continue
			}
			if server != nil {
				server.Notify()
				logger.DebugContext(ctx, "reload broadcast", "clients", server.ClientCount())
			}
		}
	}
}

// RunDictionaryAdd records word as accepted, creating the dictionary file on
// first use.
func RunDictionaryAdd(params RunParams, flags *pflag.FlagSet, word string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	dict, err := dictionary.Load(settings.Dictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	added, err := dict.Add(word)
	if err != nil {
		return err
	}
	if added {
		_, err = fmt.Fprintf(params.Stdout, "added %q to %s\n", word, settings.Dictionary)
	} else {
		_, err = fmt.Fprintf(params.Stdout, "%q is already in %s\n", word, settings.Dictionary)
	}
	return err
}
