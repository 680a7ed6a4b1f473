package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // ini file, optional
	Database string // SQLite dataset store, optional
	Dataset  string // dataset id or name within Database
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the steam CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "steam",
		Short: "Steam and water state resolver",
		Long: `Resolve thermodynamic states of water and steam from any two
independent properties (P, T, x, v, h, s) using reference tables.

Tables come from a stored dataset (--db with --dataset), from the paths in
the [tables] section of --config, or from the built-in tables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Dataset != "" && opts.Database == "" {
				return fmt.Errorf("--dataset requires --db")
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to ini configuration file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite dataset store")
	cmd.PersistentFlags().StringVar(&opts.Dataset, "dataset", "", "dataset id or name to load tables from")

	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewRankineCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
