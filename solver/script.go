package solver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const DefaultIterations = 100

// Script is an XFOIL session analysing a single operating point: load the
// geometry, repanel, run one viscous point and accumulate it into PolarFile.
type Script struct {
	GeometryFile string
	PolarFile    string
	Reynolds     float64
	Mach         float64
	Alpha        float64
	Iterations   int
}

func WriteScript(w io.Writer, s Script) error {
	iter := s.Iterations
	if iter <= 0 {
		iter = DefaultIterations
	}

	bw := bufio.NewWriter(w)
	lines := []string{
		"LOAD " + s.GeometryFile,
		"",
		"PANE",
		"OPER",
		"Visc " + formatNumber(s.Reynolds),
		"Mach " + formatNumber(s.Mach),
		"PACC",
		s.PolarFile,
		"",
		"ITER " + strconv.Itoa(iter),
		"Alfa " + formatNumber(s.Alpha),
		"",
		"quit",
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// XFOIL reads plain decimals, avoid exponents
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
