package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/store"
	"github.com/roach88/steam/internal/superheat"
	"github.com/roach88/steam/internal/tables"
)

// TablesOptions holds flags for the tables subcommands.
type TablesOptions struct {
	*RootOptions
	Name        string
	Saturation  string
	Superheated string
	Mesh        bool
}

// NewTablesCommand creates the tables command and its subcommands.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect and store reference tables",
		Long: `Inspect the active reference tables and manage datasets stored in a
SQLite database (--db). A stored dataset is selected with --dataset.`,
	}

	cmd.AddCommand(newTablesDescribeCommand(opts))
	cmd.AddCommand(newTablesImportCommand(opts))
	cmd.AddCommand(newTablesListCommand(opts))
	cmd.AddCommand(newTablesDeleteCommand(opts))

	return cmd
}

func newTablesDescribeCommand(opts *TablesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show row counts and ranges of the active tables",
		Long: `Show row counts and the ranges covered by the active tables.

Examples:
  steam tables describe
  steam tables describe --mesh
  steam tables describe --db steam.db --dataset iapws`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTablesDescribe(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Mesh, "mesh", false, "include superheated triangulation sizes")
	return cmd
}

func newTablesImportCommand(opts *TablesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a pair of tables as a dataset",
		Long: `Parse a saturation table and a superheated table and store them as a
new dataset. Without --saturation and --superheated the built-in tables
are stored.

Examples:
  steam tables import --db steam.db --name builtin
  steam tables import --db steam.db --name iapws --saturation sat.txt --superheated super.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTablesImport(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "dataset name (required)")
	cmd.Flags().StringVar(&opts.Saturation, "saturation", "", "saturation table file")
	cmd.Flags().StringVar(&opts.Superheated, "superheated", "", "superheated table file")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsRequiredTogether("saturation", "superheated")
	return cmd
}

func newTablesListCommand(opts *TablesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored datasets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTablesList(opts, cmd)
		},
	}
}

func newTablesDeleteCommand(opts *TablesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <dataset-id>",
		Short:         "Delete a stored dataset",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTablesDelete(opts, args[0], cmd)
		},
	}
}

// tablesDescription is the output of tables describe.
type tablesDescription struct {
	Source string `json:"source"`
	tables.Summary
	Triangles map[string]int `json:"triangles,omitempty"`
}

// meshPairs are the superheated axis pairs the resolver interpolates on.
var meshPairs = [][2]superheat.Axis{
	{superheat.Temperature, superheat.Pressure},
	{superheat.Pressure, superheat.Enthalpy},
	{superheat.Pressure, superheat.Entropy},
	{superheat.Pressure, superheat.Volume},
	{superheat.Temperature, superheat.Enthalpy},
	{superheat.Temperature, superheat.Entropy},
	{superheat.Temperature, superheat.Volume},
	{superheat.Enthalpy, superheat.Entropy},
}

func meshName(pair [2]superheat.Axis) string {
	return pair[0].String() + "-" + pair[1].String()
}

func (d tablesDescription) Format(w io.Writer) error {
	s := d.Summary
	fmt.Fprintf(w, "Tables: %s\n", d.Source)
	fmt.Fprintf(w, "Saturation: %d rows\n", s.SaturationRows)
	fmt.Fprintf(w, "  P  %.2f .. %.2f kPa\n", s.SatPressure.Min, s.SatPressure.Max)
	fmt.Fprintf(w, "  T  %.2f .. %.2f degrees C\n", s.SatTemperature.Min, s.SatTemperature.Max)
	fmt.Fprintf(w, "Superheated: %d rows\n", s.SuperheatedRows)
	fmt.Fprintf(w, "  P  %.2f .. %.2f kPa\n", s.SuperPressure.Min, s.SuperPressure.Max)
	fmt.Fprintf(w, "  T  %.2f .. %.2f degrees C\n", s.SuperTemperature.Min, s.SuperTemperature.Max)
	fmt.Fprintf(w, "  h  %.2f .. %.2f kJ/kg\n", s.SuperEnthalpy.Min, s.SuperEnthalpy.Max)
	_, err := fmt.Fprintf(w, "  s  %.4f .. %.4f kJ/(kg K)\n", s.SuperEntropy.Min, s.SuperEntropy.Max)
	if err != nil || len(d.Triangles) == 0 {
		return err
	}
	fmt.Fprintln(w, "Triangles:")
	for _, pair := range meshPairs {
		name := meshName(pair)
		if _, err := fmt.Fprintf(w, "  %-4s %d\n", name, d.Triangles[name]); err != nil {
			return err
		}
	}
	return nil
}

func runTablesDescribe(opts *TablesOptions, cmd *cobra.Command) error {
	e, err := newEnv(cmd.Context(), opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	d := tablesDescription{
		Source:  e.out.Tables,
		Summary: e.resolver.Tables().Summary(),
	}
	if opts.Mesh {
		d.Triangles = make(map[string]int, len(meshPairs))
		for _, pair := range meshPairs {
			d.Triangles[meshName(pair)] = e.resolver.Superheat().Triangles(pair[0], pair[1])
		}
	}
	return e.out.Success(d)
}

// openStore opens --db, reporting a missing flag or open failure as a
// command error.
func openStore(opts *RootOptions, out *OutputFormatter) (*store.Store, error) {
	if opts.Database == "" {
		return nil, out.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Errorf("--db is required"))
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeStore, err)
	}
	return st, nil
}

func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func runTablesImport(opts *TablesOptions, cmd *cobra.Command) error {
	out := formatterFor(opts.RootOptions, cmd)

	t := tables.Default()
	if opts.Saturation != "" {
		var err error
		t, err = tables.LoadFiles(opts.Saturation, opts.Superheated)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeTables, err)
		}
	}

	st, err := openStore(opts.RootOptions, out)
	if err != nil {
		return err
	}
	defer st.Close()

	ds, err := st.ImportTables(cmd.Context(), opts.Name, t)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeStore, err)
	}
	if opts.Format == "json" {
		return out.Success(ds)
	}
	return out.Success(fmt.Sprintf("Imported dataset %s (%s): %d saturation rows, %d superheated rows",
		ds.Name, ds.ID, ds.SaturationRows, ds.SuperheatedRows))
}

// datasetList is the output of tables list.
type datasetList []store.Dataset

func (l datasetList) Format(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No datasets.")
		return err
	}
	for _, ds := range l {
		if _, err := fmt.Fprintf(w, "%s  %-16s %3d sat %4d super  %s\n",
			ds.ID, ds.Name, ds.SaturationRows, ds.SuperheatedRows, ds.ContentHash[:12]); err != nil {
			return err
		}
	}
	return nil
}

func runTablesList(opts *TablesOptions, cmd *cobra.Command) error {
	out := formatterFor(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions, out)
	if err != nil {
		return err
	}
	defer st.Close()

	datasets, err := st.ListDatasets(cmd.Context())
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeStore, err)
	}
	return out.Success(datasetList(datasets))
}

func runTablesDelete(opts *TablesOptions, id string, cmd *cobra.Command) error {
	out := formatterFor(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions, out)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDataset(cmd.Context(), id); err != nil {
		return out.Fail(ExitCommandError, ErrCodeStore, err)
	}
	if opts.Format == "json" {
		return out.Success(map[string]string{"deleted": id})
	}
	return out.Success("Deleted dataset " + id)
}
