package geometry

import (
	"fmt"
	"math"

	"naca/model"
)

// NACA 4-digit thickness envelope coefficients.
const (
	a0 = 0.2969
	a1 = -0.1260
	a2 = -0.3516
	a3 = 0.2843
	a4 = -0.1015
)

// Parameter limits.
const (
	MaxThicknessRatio = 0.5
	MaxCamberPosition = 0.9
	MinSampleCount    = 2
)

// Parameters describes a NACA 4-digit section. Ratios are fractions of the
// chord, ChordLength is in meters.
type Parameters struct {
	ThicknessRatio float64 `json:"thickness_ratio"`
	MaxCamberRatio float64 `json:"max_camber_ratio"`
	CamberPosition float64 `json:"camber_position"`
	ChordLength    float64 `json:"chord_length"`
	SampleCount    int     `json:"sample_count"`
	Inverted       bool    `json:"inverted"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is the sampled airfoil. Stations, Camber, Upper and Lower are
// normalized by the chord; Loop is in physical units.
type Geometry struct {
	Params   Parameters
	Stations []float64
	Camber   []float64
	Upper    []float64
	Lower    []float64
	// Upper surface from trailing edge to leading edge, then lower surface
	// back to the trailing edge. The leading edge point appears once.
	Loop []Point
}

func (p Parameters) Validate() error {
	switch {
	case math.IsNaN(p.ThicknessRatio) || p.ThicknessRatio <= 0 || p.ThicknessRatio > MaxThicknessRatio:
		return model.NewParameterError("thickness_ratio", p.ThicknessRatio, fmt.Sprintf("must be in (0, %g]", MaxThicknessRatio))
	case math.IsNaN(p.MaxCamberRatio) || p.MaxCamberRatio < 0 || p.MaxCamberRatio >= 1:
		return model.NewParameterError("max_camber_ratio", p.MaxCamberRatio, "must be in [0, 1)")
	case math.IsNaN(p.CamberPosition) || p.CamberPosition < 0 || p.CamberPosition > MaxCamberPosition:
		return model.NewParameterError("camber_position", p.CamberPosition, fmt.Sprintf("must be in [0, %g]", MaxCamberPosition))
	case math.IsNaN(p.ChordLength) || math.IsInf(p.ChordLength, 0) || p.ChordLength <= 0:
		return model.NewParameterError("chord_length", p.ChordLength, "must be positive")
	case p.SampleCount < MinSampleCount:
		return model.NewParameterError("sample_count", p.SampleCount, fmt.Sprintf("must be at least %d", MinSampleCount))
	}
	return nil
}

// Generate samples the section described by p.
func Generate(p Parameters) (*Geometry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.SampleCount
	g := &Geometry{
		Params:   p,
		Stations: stations(n),
		Camber:   make([]float64, n),
		Upper:    make([]float64, n),
		Lower:    make([]float64, n),
	}

	for i, x := range g.Stations {
		yt := thickness(p.ThicknessRatio, x)
		yc := camber(p.MaxCamberRatio, p.CamberPosition, x)
		g.Camber[i] = yc
		g.Upper[i] = yc + yt
		g.Lower[i] = yc - yt
	}

	if p.Inverted {
		for i := range g.Stations {
			g.Camber[i] = -g.Camber[i]
			g.Upper[i] = -g.Upper[i]
			g.Lower[i] = -g.Lower[i]
		}
	}

	// the envelope leaves a small residue at x=1, close it
	g.Upper[n-1] = 0
	g.Lower[n-1] = 0

	g.Loop = make([]Point, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		g.Loop = append(g.Loop, point(g.Stations[i], g.Upper[i], p.ChordLength))
	}
	for i := 1; i < n; i++ {
		g.Loop = append(g.Loop, point(g.Stations[i], g.Lower[i], p.ChordLength))
	}

	return g, nil
}

// point scales a normalized station to physical units.
func point(x, y, chord float64) Point {
	return Point{X: noNegZero(x * chord), Y: noNegZero(y * chord)}
}

// Uniformly spaced stations over [0, 1].
func stations(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i) / float64(n-1)
	}
	s[n-1] = 1
	return s
}

func thickness(t, x float64) float64 {
	return 5 * t * (a0*math.Sqrt(x) + a1*x + a2*x*x + a3*x*x*x + a4*x*x*x*x)
}

// camber returns the mean line ordinate at x. Either m == 0 or p == 0 yields a
// symmetric section.
func camber(m, p, x float64) float64 {
	if m == 0 || p == 0 {
		return 0
	}
	if x <= p {
		return m / (p * p) * (2*p*x - x*x)
	}
	return m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
}

// CamberPoints returns the camber line in physical units.
func (g *Geometry) CamberPoints() []Point {
	pts := make([]Point, len(g.Stations))
	for i, x := range g.Stations {
		pts[i] = point(x, g.Camber[i], g.Params.ChordLength)
	}
	return pts
}

// MaxThickness returns the largest normalized distance between the surfaces
// and the station where it occurs.
func (g *Geometry) MaxThickness() (value, station float64) {
	for i, x := range g.Stations {
		if d := math.Abs(g.Upper[i] - g.Lower[i]); d > value {
			value, station = d, x
		}
	}
	return
}

// Name returns the 4-digit designation of p, e.g. "4412".
func Name(p Parameters) string {
	return fmt.Sprintf("%d%d%02d",
		int(math.Round(p.MaxCamberRatio*100)),
		int(math.Round(p.CamberPosition*10)),
		int(math.Round(p.ThicknessRatio*100)))
}
