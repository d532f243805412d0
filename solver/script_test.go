package solver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScript(t *testing.T) {
	var buf bytes.Buffer
	err := WriteScript(&buf, Script{
		GeometryFile: "airfoil.dat",
		PolarFile:    "polar_file.txt",
		Reynolds:     500000,
		Mach:         0.5,
		Alpha:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, `LOAD airfoil.dat

PANE
OPER
Visc 500000
Mach 0.5
PACC
polar_file.txt

ITER 100
Alfa 1

quit
`, buf.String())
}

func TestWriteScriptNumbers(t *testing.T) {
	var buf bytes.Buffer
	err := WriteScript(&buf, Script{
		GeometryFile: "a.dat",
		PolarFile:    "p.txt",
		Reynolds:     3e6,
		Mach:         0.15,
		Alpha:        -2.5,
		Iterations:   250,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Visc 3000000\n")
	assert.Contains(t, buf.String(), "Mach 0.15\n")
	assert.Contains(t, buf.String(), "ITER 250\n")
	assert.Contains(t, buf.String(), "Alfa -2.5\n")
}
