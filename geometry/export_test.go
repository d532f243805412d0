package geometry

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDat(t *testing.T) {
	g, err := Generate(Parameters{ThicknessRatio: 0.12, ChordLength: 0.3, SampleCount: 2, Inverted: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDat(&buf, g))
	assert.Equal(t,
		"0.3000000000 0.0000000000\n"+
			"0.0000000000 0.0000000000\n"+
			"0.3000000000 0.0000000000\n",
		buf.String())
}

func TestWriteDatLoopOrder(t *testing.T) {
	g, err := Generate(naca4412(40))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDat(&buf, g))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(g.Loop))
	for i, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		x, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		y, err := strconv.ParseFloat(fields[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, g.Loop[i].X, x, 1e-10)
		assert.InDelta(t, g.Loop[i].Y, y, 1e-10)
	}
}

func TestWriteCSV(t *testing.T) {
	g, err := Generate(Parameters{ThicknessRatio: 0.12, ChordLength: 0.3, SampleCount: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, g))
	assert.Equal(t, "300.0,0.0,0.0\n0.0,0.0,0.0\n300.0,0.0,0.0\n", buf.String())

	g, err = Generate(naca4412(25))
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteCSV(&buf, g))
	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, rows, 49)
	for i, row := range rows {
		cols := strings.Split(row, ",")
		require.Len(t, cols, 3)
		y, err := strconv.ParseFloat(cols[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, g.Loop[i].Y*1000, y, 1e-9)
		assert.Equal(t, "0.0", cols[2])
	}
}
