package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/logging"
	"github.com/abelbrown/catalog/internal/ui"
)

// errLoadFailed marks a failed load whose message was already printed.
var errLoadFailed = errors.New("load failed")

// listWidth is the layout width for printed card grids.
const listWidth = 80

func newListCmd(opts *options) *cobra.Command {
	var (
		search string
		asJSON bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the catalog once and print it",
		Long: `Fetch the catalog, apply --search and --sort, and print the result
as cards (or JSON with --json). Exits non-zero if the fetch fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := logging.InitWriter(cmd.ErrOrStderr(), cfg.Logging.Level); err != nil {
				return errors.Wrap(err, "init logging")
			}

			ctrl, err := newController(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ctrl.Dispose()

			ctrl.Apply(ctrl.Load())
			if f := ctrl.Failure(); f != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
				return errLoadFailed
			}
			ctrl.SetSearch(search)

			return printItems(cmd, ctrl.View(), asJSON, width, cfg.UI.CardWidth)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only items whose name contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	cmd.Flags().IntVar(&width, "width", listWidth, "Layout width for the card grid")
	return cmd
}

func printItems(cmd *cobra.Command, items []catalog.Item, asJSON bool, width, cardWidth int) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found matching your search.")
		return nil
	}
	grid, _ := ui.RenderGrid(items, width, cardWidth, -1, nil)
	fmt.Fprintln(out, grid)
	return nil
}
