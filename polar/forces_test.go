package polar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naca/model"
)

func TestComputeForces(t *testing.T) {
	flow := FlowConditions{
		Reynolds:     500000,
		Mach:         0.5,
		ChordLength:  0.3,
		AirDensity:   1.225,
		AirViscosity: 1.81e-5,
	}
	f, err := ComputeForces(flow, Polar{CL: 0.5, CD: 0.02})
	require.NoError(t, err)

	assert.InDelta(t, 24.6259, f.Velocity, 1e-4)
	assert.InDelta(t, 371.4399, f.DynamicPressure, 1e-4)
	assert.InDelta(t, 0.3, f.ReferenceArea, 1e-15)
	assert.InDelta(t, 55.7160, f.Lift, 1e-4)
	assert.InDelta(t, 2.2286, f.Drag, 1e-4)
	assert.InDelta(t, 25.0, f.LiftToDrag, 1e-12)
	assert.InDelta(t, f.LiftToDrag, f.Lift/f.Drag, 1e-9)
}

func TestComputeForcesScaling(t *testing.T) {
	flow := DefaultFlowConditions()
	p := Polar{CL: 0.8, CD: 0.01}
	f1, err := ComputeForces(flow, p)
	require.NoError(t, err)

	flow.Reynolds *= 2
	f2, err := ComputeForces(flow, p)
	require.NoError(t, err)
	assert.InDelta(t, 2*f1.Velocity, f2.Velocity, 1e-9)
	assert.InDelta(t, 4*f1.Lift, f2.Lift, 1e-9)
	assert.Equal(t, f1.LiftToDrag, f2.LiftToDrag)
}

func TestComputeForcesZeroDrag(t *testing.T) {
	_, err := ComputeForces(DefaultFlowConditions(), Polar{CL: 0.5})
	assert.True(t, errors.Is(err, ErrUndefinedRatio))
}

func TestComputeForcesInvalidFlow(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *FlowConditions)
		param  string
	}{
		{"reynolds", func(f *FlowConditions) { f.Reynolds = 0 }, "reynolds"},
		{"chord", func(f *FlowConditions) { f.ChordLength = -1 }, "chord_length"},
		{"density", func(f *FlowConditions) { f.AirDensity = 0 }, "air_density"},
		{"viscosity", func(f *FlowConditions) { f.AirViscosity = 0 }, "air_viscosity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := DefaultFlowConditions()
			tt.modify(&flow)
			_, err := ComputeForces(flow, Polar{CL: 0.5, CD: 0.02})
			var pe *model.ParameterError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.param, pe.Name)
		})
	}
}

func TestFlowConditionsValidate(t *testing.T) {
	assert.NoError(t, DefaultFlowConditions().Validate())

	flow := DefaultFlowConditions()
	flow.Mach = 1
	assert.True(t, errors.Is(flow.Validate(), model.ErrInvalidParameter))

	// mach is irrelevant to the force conversion
	_, err := ComputeForces(flow, Polar{CL: 0.5, CD: 0.02})
	assert.NoError(t, err)
}
