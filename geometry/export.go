package geometry

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const mmPerMeter = 1000.0

// WriteDat writes the loop as XFOIL reads it: one "x y" pair per line in
// meters, no header.
func WriteDat(w io.Writer, g *Geometry) error {
	bw := bufio.NewWriter(w)
	for _, pt := range g.Loop {
		if _, err := fmt.Fprintf(bw, "%.10f %.10f\n", noNegZero(pt.X), noNegZero(pt.Y)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCSV writes the loop for CAD import: x,y,z rows in millimeters with z
// always zero, no header.
func WriteCSV(w io.Writer, g *Geometry) error {
	cw := csv.NewWriter(w)
	for _, pt := range g.Loop {
		row := []string{formatMM(pt.X * mmPerMeter), formatMM(pt.Y * mmPerMeter), "0.0"}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMM(v float64) string {
	s := strconv.FormatFloat(noNegZero(v), 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// -0 comes out of inversion at the leading edge and must not reach any output
func noNegZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
