package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/harness"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Filter  string // scenario filter (glob pattern)
	Workers int    // overrides the scenario's worker count when > 0
}

// BatchResult holds the outcome of every scenario run.
type BatchResult struct {
	Reports []*harness.Report `json:"reports"`
	Errors  []string          `json:"errors,omitempty"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Total   int               `json:"total"`
}

// Format writes each report followed by a totals line.
func (r *BatchResult) Format(w io.Writer) error {
	if r.Total == 0 {
		_, err := fmt.Fprintln(w, "No scenarios found.")
		return err
	}
	for _, rep := range r.Reports {
		if err := rep.Format(w); err != nil {
			return err
		}
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "FAIL %s\n", e)
	}
	_, err := fmt.Fprintf(w, "\n%d scenarios: %d passed, %d failed\n", r.Total, r.Passed, r.Failed)
	return err
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml|dir>...",
		Short: "Resolve scenario files of states",
		Long: `Resolve every state of one or more YAML scenario files and check
the expected values. Directories are searched for .yaml and .yml files.

Exit codes:
  0 - All states passed
  1 - One or more states failed
  2 - Command error (invalid paths, invalid scenario, etc.)

Examples:
  steam batch scenarios/steam_cycle.yaml
  steam batch ./scenarios --filter "cycle-*"
  steam batch ./scenarios --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "states resolved concurrently per scenario")

	return cmd
}

func runBatch(opts *BatchOptions, paths []string, cmd *cobra.Command) error {
	e, err := newEnv(cmd.Context(), opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	var files []string
	for _, p := range paths {
		found, err := findScenarioFiles(p, opts.Filter)
		if err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeScenario, err)
		}
		files = append(files, found...)
	}

	result := &BatchResult{Reports: []*harness.Report{}, Total: len(files)}
	for _, file := range files {
		log := e.log.WithField("scenario", file)
		sc, err := harness.LoadScenario(file)
		if err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeScenario, err)
		}
		if opts.Workers > 0 {
			sc.Workers = opts.Workers
		}

		report, err := harness.Run(cmd.Context(), e.resolver, sc)
		if err != nil {
			log.WithError(err).Warn("scenario aborted")
			result.Errors = append(result.Errors, err.Error())
			result.Failed++
			continue
		}
		log.WithFields(logrus.Fields{
			"passed": report.Passed,
			"failed": report.Failed,
		}).Debug("scenario finished")

		result.Reports = append(result.Reports, report)
		if report.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := e.out.Success(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total),
			reported: true,
		}
	}
	return nil
}

// findScenarioFiles returns path itself when it is a file, or the YAML
// files below it when it is a directory.
func findScenarioFiles(path string, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenario path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}
