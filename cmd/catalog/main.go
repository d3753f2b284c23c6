package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/config"
	"github.com/abelbrown/catalog/internal/controller"
	"github.com/abelbrown/catalog/internal/diag"
	"github.com/abelbrown/catalog/internal/fetch"
	"github.com/abelbrown/catalog/internal/logging"
	"github.com/abelbrown/catalog/internal/thumb"
	"github.com/abelbrown/catalog/internal/ui"
)

// thumbnailParallel caps concurrent image downloads.
const thumbnailParallel = 4

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	endpoint   string
	timeout    time.Duration
	locale     string
	sort       string
	logLevel   string
	thumbnails bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse a product catalog in the terminal",
		Long: `catalog fetches a product list once and shows it as a searchable,
sortable grid of cards. Type to filter by name; tab cycles the sort.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.catalog/config.yaml)")
	pf.StringVar(&opts.endpoint, "endpoint", "", "Catalog endpoint URL (or set CATALOG_ENDPOINT)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (or set CATALOG_TIMEOUT)")
	pf.StringVar(&opts.locale, "locale", "", "Collation locale for name sorting")
	pf.StringVar(&opts.sort, "sort", "", "Initial sort: name, price or rating")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&opts.thumbnails, "thumbnails", false, "Download and draw item images")

	root.AddCommand(newListCmd(opts))
	return root
}

// loadConfig layers flags that were set explicitly over the file and
// environment configuration.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("locale") {
		cfg.UI.Locale = opts.locale
	}
	if flags.Changed("sort") {
		key, err := catalog.ParseSortKey(opts.sort)
		if err != nil {
			return nil, errors.Wrap(err, "--sort")
		}
		cfg.UI.DefaultSort = key
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("thumbnails") {
		cfg.UI.Thumbnails = opts.thumbnails
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController builds the fetcher and the controller that owns the load.
func newController(ctx context.Context, cfg *config.Config) (*controller.Controller, error) {
	collator, err := catalog.NewCollator(cfg.UI.Locale)
	if err != nil {
		return nil, err
	}
	fetcher := fetch.NewFetcher(cfg.Endpoint, cfg.Timeout, fetch.WithUserAgent(cfg.UserAgent))
	return controller.New(ctx, fetcher,
		controller.WithCollator(collator),
		controller.WithSortKey(cfg.UI.DefaultSort),
		controller.WithEvents(diag.NewRing(diag.DefaultRingSize)),
	), nil
}

// thumbnailLoader returns the App's thumbnail hook, or nil when disabled.
// Downloads share the controller's context so quitting cancels them.
func thumbnailLoader(cfg *config.Config, ctrl *controller.Controller) func(catalog.Item) tea.Cmd {
	if !cfg.UI.Thumbnails {
		return nil
	}
	w, h := ui.ThumbnailSize(cfg.UI.CardWidth)
	renderer := thumb.NewRenderer(w, h, thumbnailParallel, cfg.Timeout)
	ctx := ctrl.Context()

	return func(item catalog.Item) tea.Cmd {
		return func() tea.Msg {
			s, err := renderer.Fetch(ctx, item.Image)
			return ui.ThumbnailLoaded{ID: item.ID, Thumbnail: s, Err: err}
		}
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file.
	if err := logging.Init(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
		return errors.Wrap(err, "init logging")
	}
	defer logging.Close()

	logging.Info("Catalog starting", "endpoint", cfg.Endpoint, "sort", cfg.UI.DefaultSort, "locale", cfg.UI.Locale)

	ctx := cmd.Context()
	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	defer ctrl.Dispose()

	app := ui.NewApp(ui.AppConfig{
		Controller:    ctrl,
		CardWidth:     cfg.UI.CardWidth,
		LoadThumbnail: thumbnailLoader(cfg, ctrl),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run program")
	}

	logging.Info("Catalog exiting")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errLoadFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
