package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/report"
	"github.com/rshade/offsetcalc/internal/tui"
)

type browseFlags struct {
	before beforeFlags
	sortBy string
	order  string
}

// newBrowseCmd creates the browse command, an interactive table of the
// allowed conversions. Without a terminal it prints the plain table instead.
func newBrowseCmd(st *rootState) *cobra.Command {
	var f browseFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse allowed conversions interactively",
		Long: `Open an interactive table of every allowed conversion of the before parcel.

Keys: 's' cycles the sort field, 'o' toggles the order, '/' filters by name or
condition, 'enter' shows the details of a row, 'q' quits.`,
		Example: `  offsetcalc browse --random
  offsetcalc browse --habitat Grassland --distinct-subtype "Modified grassland" \
    --carbon-subtype "Improved grassland" --condition 1.5 --sort biodiversity`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, st, &f)
		},
	}

	f.before.register(cmd)
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "initial sort field (default from config)")
	cmd.Flags().StringVar(&f.order, "order", "", "initial sort order: asc or desc")

	return cmd
}

func runBrowse(cmd *cobra.Command, st *rootState, f *browseFlags) error {
	ctx := cmd.Context()

	opts := optionsFlags{sortBy: f.sortBy, order: f.order}
	_, sortBy, order, _, err := resolveOutput(cmd, st, &opts)
	if err != nil {
		return err
	}

	tables, err := loadTables(ctx, st.cfg)
	if err != nil {
		return err
	}
	builder, enum := newCalculator(ctx, tables, st.cfg)

	before, err := f.before.build(cmd, builder)
	if err != nil {
		return err
	}
	res, err := enum.Collect(before)
	if err != nil {
		return fmt.Errorf("enumerating options: %w", err)
	}
	rep := report.New(res, st.cfg.Calculation.Years)

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		st.logger.Debug().Msg("no terminal, printing table")
		rep.Rows = report.Sort(rep.Rows, sortBy, order)
		return report.RenderTable(cmd.OutOrStdout(), rep)
	}
	return runInteractiveBrowse(ctx, rep, sortBy, order)
}

func runInteractiveBrowse(ctx context.Context, rep report.Report, sortBy report.SortField, order string) error {
	p := tea.NewProgram(tui.NewBrowseModel(rep, sortBy, order), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
