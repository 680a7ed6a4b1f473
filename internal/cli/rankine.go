package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/cycle"
)

// RankineOptions holds flags for the rankine command.
type RankineOptions struct {
	*RootOptions
	Cycle cycle.Rankine
	THigh float64
	TS    bool
	Plot  string
}

// rankineOutput is the JSON payload of the rankine command.
type rankineOutput struct {
	*cycle.Result
	TS []cycle.TSPoint `json:"ts,omitempty"`
}

// NewRankineCommand creates the rankine command.
func NewRankineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RankineOptions{
		RootOptions: rootOpts,
		Cycle:       cycle.New("Rankine Cycle"),
	}

	cmd := &cobra.Command{
		Use:   "rankine",
		Short: "Analyze a simple Rankine cycle",
		Long: `Compute the states, work, heat and thermal efficiency of a simple
Rankine cycle: pump, boiler, turbine and condenser.

The turbine inlet is at --p-high with either --t-high (superheated) or
--quality. The condenser is at --p-low.

Examples:
  steam rankine
  steam rankine --p-high 1100 --t-high 500 --eff 0.9 --ts
  steam rankine --p-low 10 --p-high 7350 --quality 0.9 --format json
  steam rankine --plot ts.png`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRankine(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Cycle.Name, "name", opts.Cycle.Name, "cycle name")
	cmd.Flags().Float64Var(&opts.Cycle.PLow, "p-low", cycle.DefaultPLow, "condenser pressure in kPa")
	cmd.Flags().Float64Var(&opts.Cycle.PHigh, "p-high", cycle.DefaultPHigh, "boiler pressure in kPa")
	cmd.Flags().Float64Var(&opts.THigh, "t-high", 0, "turbine inlet temperature in degrees C")
	cmd.Flags().Float64Var(&opts.Cycle.Quality, "quality", cycle.DefaultQuality, "turbine inlet quality")
	cmd.Flags().Float64Var(&opts.Cycle.TurbineEfficiency, "eff", cycle.DefaultTurbineEfficiency, "isentropic turbine efficiency")
	cmd.Flags().BoolVar(&opts.TS, "ts", false, "include the T-s diagram outline")
	cmd.Flags().StringVar(&opts.Plot, "plot", "", "write a T-s diagram to this file (.png, .svg, .pdf)")
	cmd.MarkFlagsMutuallyExclusive("t-high", "quality")

	return cmd
}

func runRankine(opts *RankineOptions, cmd *cobra.Command) error {
	e, err := newEnv(cmd.Context(), opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	c := opts.Cycle
	if cmd.Flags().Changed("t-high") {
		t := opts.THigh
		c.THigh = &t
	}
	if err := c.Validate(); err != nil {
		return e.out.Fail(ExitCommandError, ErrCodeInvalidInput, err)
	}

	res, err := c.Calc(e.resolver)
	if err != nil {
		return e.out.Fail(ExitFailure, ErrCodeInvalidInput, err)
	}
	e.log.WithField("efficiency", res.Efficiency).Debug("cycle computed")

	if opts.Plot != "" {
		dome, err := cycle.SaturationDome(e.resolver.Saturation())
		if err != nil {
			return e.out.Fail(ExitFailure, ErrCodeInvalidInput, err)
		}
		if err := res.SavePlot(opts.Plot, dome); err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeInvalidInput, err)
		}
		e.log.WithField("path", opts.Plot).Info("T-s diagram written")
	}

	out := rankineOutput{Result: res}
	if opts.TS {
		out.TS = res.TSPoints()
	}
	if opts.Format == "json" {
		return e.out.Success(out)
	}
	if err := res.Summary(e.out.Writer); err != nil {
		return err
	}
	if opts.TS {
		fmt.Fprintln(e.out.Writer, "T-s outline:")
		for _, pt := range out.TS {
			fmt.Fprintf(e.out.Writer, "\ts = %.4f kJ/(kg K)\tT = %.1f degrees C\n", pt.S, pt.T)
		}
	}
	return nil
}
