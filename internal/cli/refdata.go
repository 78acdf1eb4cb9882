package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/habitat"
	"github.com/rshade/offsetcalc/internal/refdata"
)

// ErrInvalidReferenceData is returned by refdata validate when errors are found.
var ErrInvalidReferenceData = errors.New("reference data has errors")

// newRefdataCmd creates the refdata command group for inspecting,
// validating and exporting the reference tables.
func newRefdataCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata",
		Short: "Inspect, validate and export reference data",
		Long: `Work with the carbon and distinctiveness tables behind the calculator.

The tables come from --refdata-source or reference_data in the config file.`,
	}

	cmd.AddCommand(
		newRefdataListCmd(st),
		newRefdataValidateCmd(st),
		newRefdataExportCmd(st),
	)
	return cmd
}

func newRefdataListCmd(st *rootState) *cobra.Command {
	var subtypes bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habitat categories and their row counts",
		Example: `  offsetcalc refdata list
  offsetcalc refdata list --subtypes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}
			if subtypes {
				return listSubtypes(cmd, tables)
			}
			return listCategories(cmd, tables)
		},
	}

	cmd.Flags().BoolVar(&subtypes, "subtypes", false, "list every distinctiveness row instead of a category summary")
	return cmd
}

func listCategories(cmd *cobra.Command, tables *refdata.Tables) error {
	distinctCount := make(map[habitat.Category]int)
	for _, row := range tables.DistinctivenessRows() {
		distinctCount[row.Category]++
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Habitat\tCarbon rows\tDistinctiveness rows")
	fmt.Fprintln(tw, "-------\t-----------\t--------------------")
	for _, c := range tables.Categories() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", c, len(tables.CarbonRows(c)), distinctCount[c])
	}
	carbon, distinct := tables.Len()
	fmt.Fprintf(tw, "Total\t%d\t%d\n", carbon, distinct)
	return tw.Flush()
}

func listSubtypes(cmd *cobra.Command, tables *refdata.Tables) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Habitat\tSubtype\tDistinctiveness\tDifficulty")
	fmt.Fprintln(tw, "-------\t-------\t---------------\t----------")
	for _, row := range tables.DistinctivenessRows() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%g\n", row.Category, row.Subtype, row.Score, row.Difficulty)
	}
	return tw.Flush()
}

func newRefdataValidateCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the reference tables for missing or out-of-range values",
		Long: `Check every distinctiveness row has a time-to-target value for each condition
and a score in range, and warn about categories that can never be enumerated.
Exits non-zero when any error is found.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}

			issues := refdata.Validate(tables, habitat.DefaultTransitionRules())
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
			}

			st.logger.Debug().Int("issues", len(issues)).Msg("reference data validated")
			if refdata.HasErrors(issues) {
				return ErrInvalidReferenceData
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "Reference data is valid")
			} else {
				fmt.Fprintf(out, "Reference data is valid with %d warning(s)\n", len(issues))
			}
			return nil
		},
	}
}

func newRefdataExportCmd(st *rootState) *cobra.Command {
	var sqlitePath, bundlePath, name string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the reference tables to SQLite or a YAML bundle",
		Example: `  offsetcalc refdata export --sqlite ref.db
  offsetcalc --refdata-source csv:carbon.csv,distinct.csv refdata export --bundle ref.yaml --name "metric 4.0"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sqlitePath == "" && bundlePath == "" {
				return fmt.Errorf("%w: --sqlite or --bundle", ErrMissingFlag)
			}

			ctx := cmd.Context()
			tables, err := loadTables(ctx, st.cfg)
			if err != nil {
				return err
			}

			if sqlitePath != "" {
				if err = refdata.WriteSQLite(ctx, sqlitePath, tables); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", sqlitePath)
			}
			if bundlePath != "" {
				if err = writeBundleFile(bundlePath, tables, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", bundlePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "write a SQLite database to this path")
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "write a YAML bundle to this path")
	cmd.Flags().StringVar(&name, "name", "", "dataset name recorded in the bundle")
	return cmd
}

func writeBundleFile(path string, tables *refdata.Tables, name string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return refdata.WriteBundle(f, tables, name)
}

const tabPadding = 2
