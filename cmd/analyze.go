package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"naca/calculator"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		gf         geometryFlags
		ff         flowFlags
		xfoil      string
		timeout    time.Duration
		iterations int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run XFOIL on a section and compute lift and drag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.Geometry
			gf.apply(cmd.Flags(), &p)
			flow := a.cfg.Flow
			ff.apply(cmd.Flags(), &flow)
			if cmd.Flags().Changed("xfoil") {
				a.cfg.XFoil = xfoil
			}
			if cmd.Flags().Changed("timeout") {
				a.cfg.Timeout = timeout
			}
			if cmd.Flags().Changed("iterations") {
				a.cfg.Iterations = iterations
			}

			res, err := calculator.NewWithXFoil(a.cfg).Analyze(cmd.Context(), p, flow)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "NACA %s at alpha %g°\n", res.Name, res.Polar.Alpha)
			fmt.Fprintf(out, "Velocity: %.2f m/s\n", res.Forces.Velocity)
			fmt.Fprintf(out, "Lift Coefficient (Cl): %g\n", res.Polar.CL)
			fmt.Fprintf(out, "Drag Coefficient (Cd): %g\n", res.Polar.CD)
			fmt.Fprintf(out, "Moment Coefficient (Cm): %g\n", res.Polar.CM)
			fmt.Fprintf(out, "Lift-to-Drag Ratio (L/D): %.2f\n", res.Forces.LiftToDrag)
			fmt.Fprintf(out, "Lift Force (L): %.2f N\n", res.Forces.Lift)
			fmt.Fprintf(out, "Drag Force (D): %.2f N\n", res.Forces.Drag)
			return nil
		},
	}
	gf.register(cmd.Flags())
	ff.register(cmd.Flags())
	cmd.Flags().StringVar(&xfoil, "xfoil", "xfoil", "XFOIL executable")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "solver timeout")
	cmd.Flags().IntVar(&iterations, "iterations", 100, "solver iteration cap")
	return cmd
}
