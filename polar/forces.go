package polar

import (
	"errors"
	"math"

	"naca/model"
)

// Sea level air.
const (
	DefaultAirDensity   = 1.225   // kg/m³
	DefaultAirViscosity = 1.81e-5 // kg/(m·s)
)

// unit span, this is a 2D section
const span = 1.0

var ErrUndefinedRatio = errors.New("lift to drag ratio undefined for zero drag coefficient")

// FlowConditions describes the freestream around the section. Alpha is in
// degrees, ChordLength in meters.
type FlowConditions struct {
	Reynolds     float64 `json:"reynolds"`
	Mach         float64 `json:"mach"`
	Alpha        float64 `json:"alpha"`
	ChordLength  float64 `json:"chord_length"`
	AirDensity   float64 `json:"air_density"`
	AirViscosity float64 `json:"air_viscosity"`
}

func DefaultFlowConditions() FlowConditions {
	return FlowConditions{
		Reynolds:     500000,
		Mach:         0.5,
		Alpha:        1,
		ChordLength:  0.3,
		AirDensity:   DefaultAirDensity,
		AirViscosity: DefaultAirViscosity,
	}
}

// Validate checks everything the solver and the force conversion rely on.
func (f FlowConditions) Validate() error {
	if err := f.validateForces(); err != nil {
		return err
	}
	if math.IsNaN(f.Mach) || f.Mach <= 0 || f.Mach >= 1 {
		return model.NewParameterError("mach", f.Mach, "must be in (0, 1)")
	}
	if math.IsNaN(f.Alpha) || math.IsInf(f.Alpha, 0) {
		return model.NewParameterError("alpha", f.Alpha, "must be finite")
	}
	return nil
}

func (f FlowConditions) validateForces() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"reynolds", f.Reynolds},
		{"chord_length", f.ChordLength},
		{"air_density", f.AirDensity},
		{"air_viscosity", f.AirViscosity},
	} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return model.NewParameterError(c.name, c.v, "must be positive")
		}
	}
	return nil
}

// Forces per unit span.
type Forces struct {
	Velocity        float64 `json:"velocity"`         // m/s
	DynamicPressure float64 `json:"dynamic_pressure"` // Pa
	ReferenceArea   float64 `json:"reference_area"`   // m²
	Lift            float64 `json:"lift"`             // N
	Drag            float64 `json:"drag"`             // N
	LiftToDrag      float64 `json:"lift_to_drag"`
}

// ComputeForces converts the coefficients of p into forces, recovering the
// freestream velocity from the Reynolds number. Mach and Alpha are not used.
func ComputeForces(flow FlowConditions, p Polar) (Forces, error) {
	if err := flow.validateForces(); err != nil {
		return Forces{}, err
	}
	if p.CD == 0 {
		return Forces{}, ErrUndefinedRatio
	}

	v := flow.Reynolds * flow.AirViscosity / (flow.AirDensity * flow.ChordLength)
	s := flow.ChordLength * span
	q := 0.5 * flow.AirDensity * v * v

	return Forces{
		Velocity:        v,
		DynamicPressure: q,
		ReferenceArea:   s,
		Lift:            q * s * p.CL,
		Drag:            q * s * p.CD,
		LiftToDrag:      p.CL / p.CD,
	}, nil
}
