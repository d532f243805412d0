package calculator

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"naca/geometry"
	"naca/polar"
	"naca/solver"
)

// Result of one analysed operating point.
type Result struct {
	Name     string
	Geometry *geometry.Geometry
	Polar    polar.Polar
	Forces   polar.Forces
}

// Calculator ties the geometry to the external solver and the force
// conversion.
type Calculator struct {
	cfg    *Config
	runner solver.Runner
}

func New(cfg *Config, runner solver.Runner) *Calculator {
	return &Calculator{cfg: cfg, runner: runner}
}

// NewWithXFoil builds a calculator around the XFOIL executable named in cfg.
func NewWithXFoil(cfg *Config) *Calculator {
	x := solver.NewXFoil(cfg.XFoil)
	x.Iterations = cfg.Iterations
	x.Timeout = cfg.Timeout
	x.WorkDir = cfg.WorkDir
	return New(cfg, x)
}

func (c *Calculator) Config() *Config {
	return c.cfg
}

func (c *Calculator) Generate(p geometry.Parameters) (*geometry.Geometry, error) {
	g, err := geometry.Generate(p)
	if err != nil {
		return nil, err
	}
	t, x := g.MaxThickness()
	log.WithFields(log.Fields{
		"name":          geometry.Name(p),
		"points":        len(g.Loop),
		"chord":         p.ChordLength,
		"inverted":      p.Inverted,
		"max_thickness": t,
		"at":            x,
	}).Debug("generated airfoil")
	return g, nil
}

// Analyze generates the section, runs the solver on it and converts the
// resulting polar point into forces. The chord of flow is replaced by the
// one in p.
func (c *Calculator) Analyze(ctx context.Context, p geometry.Parameters, flow polar.FlowConditions) (*Result, error) {
	g, err := c.Generate(p)
	if err != nil {
		return nil, err
	}
	flow.ChordLength = p.ChordLength
	if err := flow.Validate(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(c.cfg.WorkDir, "airfoil-*.dat")
	if err != nil {
		return nil, fmt.Errorf("creating coordinate file: %w", err)
	}
	defer os.Remove(f.Name())
	if err := geometry.WriteDat(f, g); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing coordinate file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing coordinate file: %w", err)
	}

	report, err := c.runner.Run(ctx, f.Name(), flow)
	if err != nil {
		return nil, err
	}
	row, err := polar.ExtractRow(report)
	if err != nil {
		return nil, err
	}
	forces, err := polar.ComputeForces(flow, row)
	if err != nil {
		return nil, err
	}

	name := geometry.Name(p)
	log.WithFields(log.Fields{
		"name":  name,
		"alpha": row.Alpha,
		"cl":    row.CL,
		"cd":    row.CD,
		"lift":  forces.Lift,
		"drag":  forces.Drag,
	}).Info("analysis finished")

	return &Result{Name: name, Geometry: g, Polar: row, Forces: forces}, nil
}
