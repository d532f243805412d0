package cmd

import (
	"github.com/spf13/pflag"

	"naca/geometry"
	"naca/polar"
)

// Flags override the config only when set on the command line.

type geometryFlags struct {
	thickness float64
	camber    float64
	position  float64
	chordMM   float64
	points    int
	inverted  bool
}

func (g *geometryFlags) register(fs *pflag.FlagSet) {
	fs.Float64VarP(&g.thickness, "thickness", "t", 0.12, "thickness to chord ratio t/c")
	fs.Float64VarP(&g.camber, "camber", "m", 0.04, "maximum camber to chord ratio m/c")
	fs.Float64VarP(&g.position, "camber-position", "p", 0.4, "position of maximum camber p/c")
	fs.Float64Var(&g.chordMM, "chord", 300, "chord length in mm")
	fs.IntVarP(&g.points, "points", "n", 400, "number of stations")
	fs.BoolVar(&g.inverted, "invert", false, "invert the section for downforce")
}

func (g *geometryFlags) apply(fs *pflag.FlagSet, p *geometry.Parameters) {
	if fs.Changed("thickness") {
		p.ThicknessRatio = g.thickness
	}
	if fs.Changed("camber") {
		p.MaxCamberRatio = g.camber
	}
	if fs.Changed("camber-position") {
		p.CamberPosition = g.position
	}
	if fs.Changed("chord") {
		p.ChordLength = g.chordMM / 1000
	}
	if fs.Changed("points") {
		p.SampleCount = g.points
	}
	if fs.Changed("invert") {
		p.Inverted = g.inverted
	}
}

type flowFlags struct {
	reynolds float64
	mach     float64
	alpha    float64
}

func (f *flowFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.reynolds, "re", 500000, "Reynolds number")
	fs.Float64Var(&f.mach, "mach", 0.5, "Mach number")
	fs.Float64VarP(&f.alpha, "alpha", "a", 1, "angle of attack in degrees")
}

func (f *flowFlags) apply(fs *pflag.FlagSet, flow *polar.FlowConditions) {
	if fs.Changed("re") {
		flow.Reynolds = f.reynolds
	}
	if fs.Changed("mach") {
		flow.Mach = f.mach
	}
	if fs.Changed("alpha") {
		flow.Alpha = f.alpha
	}
}
