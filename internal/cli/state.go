package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/steam"
)

// StateOptions holds flags for the state command.
type StateOptions struct {
	*RootOptions
	Name   string
	Strict bool
	Values map[steam.Property]*float64
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StateOptions{
		RootOptions: rootOpts,
		Values:      make(map[steam.Property]*float64),
	}

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Resolve one state from two properties",
		Long: `Resolve a water or steam state from two independent properties.

Properties: P (kPa), T (degrees C), x (quality), v (m^3/kg), h (kJ/kg),
s (kJ/(kg K)). Supplying more than two is allowed; with --strict the
extra values must agree with the resolved state.

Exit codes:
  0 - State resolved
  1 - Resolution failed (out of range, no convergence, etc.)
  2 - Command error

Examples:
  steam state --P 7350 --x 0.9
  steam state --P 100 --s 5.7448 --name "turbine exit"
  steam state --T 500 --h 3478 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(opts, cmd)
		},
	}

	for _, p := range steam.Properties() {
		v := new(float64)
		opts.Values[p] = v
		cmd.Flags().Float64Var(v, p.String(), 0, stateFlagUsage(p))
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "state name shown in the report")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject extra values that disagree with the resolved state")

	return cmd
}

func stateFlagUsage(p steam.Property) string {
	if p.Unit() == "" {
		return p.String()
	}
	return p.String() + " in " + p.Unit()
}

func runState(opts *StateOptions, cmd *cobra.Command) error {
	var extra []steam.Option
	if cmd.Flags().Changed("strict") {
		extra = append(extra, steam.WithStrict(opts.Strict))
	}
	e, err := newEnv(cmd.Context(), opts.RootOptions, cmd, extra...)
	if err != nil {
		return err
	}

	s := steam.NewState(opts.Name)
	for _, p := range steam.Properties() {
		if cmd.Flags().Changed(p.String()) {
			s.Set(p, *opts.Values[p])
		}
	}

	if err := e.resolver.Resolve(s); err != nil {
		return e.out.Fail(ExitFailure, ErrCodeInvalidInput, err)
	}
	return e.out.Success(s)
}
