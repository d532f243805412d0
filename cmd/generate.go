package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"naca/calculator"
	"naca/geometry"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		gf      geometryFlags
		datPath string
		csvPath string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate airfoil coordinates",
		Long: `Generate the coordinates of a NACA 4-digit section and write them as an
XFOIL .dat file (meters) and/or a CAD csv file (millimeters). Use "-" to write
to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.Geometry
			gf.apply(cmd.Flags(), &p)

			g, err := calculator.NewWithXFoil(a.cfg).Generate(p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if datPath != "-" && csvPath != "-" {
				printSummary(out, g)
			}
			if datPath != "" {
				if err := writeOutput(datPath, out, g, geometry.WriteDat); err != nil {
					return err
				}
			}
			if csvPath != "" {
				if err := writeOutput(csvPath, out, g, geometry.WriteCSV); err != nil {
					return err
				}
			}
			return nil
		},
	}
	gf.register(cmd.Flags())
	cmd.Flags().StringVar(&datPath, "dat", "", "write XFOIL coordinates to this file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write CAD coordinates in mm to this file")
	return cmd
}

func printSummary(w io.Writer, g *geometry.Geometry) {
	name := "NACA " + geometry.Name(g.Params)
	if g.Params.Inverted {
		name += " (inverted)"
	}
	t, x := g.MaxThickness()
	fmt.Fprintln(w, name)
	fmt.Fprintf(w, "Chord: %g m, %d points\n", g.Params.ChordLength, len(g.Loop))
	fmt.Fprintf(w, "Max thickness: %.4f at x/c = %.3f\n", t, x)
}

func writeOutput(path string, stdout io.Writer, g *geometry.Geometry,
	write func(io.Writer, *geometry.Geometry) error,
) error {
	if path == "-" {
		return write(stdout, g)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, g); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
