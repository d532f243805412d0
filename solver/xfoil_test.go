package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naca/polar"
)

const fakeReport = `
   alpha    CL        CD       CDp       CM     Top_Xtr  Bot_Xtr
  ------ -------- --------- --------- -------- -------- --------
   1.000   0.6351   0.00812   0.00325  -0.1083   0.6132   1.0000
`

// fakeXFoil writes an executable shell script standing in for XFOIL.
func fakeXFoil(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solver needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "xfoil")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func geometryFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "naca0012.dat")
	require.NoError(t, os.WriteFile(path, []byte("1.0 0.0\n0.0 0.0\n1.0 0.0\n"), 0o644))
	return path
}

func TestXFoilRun(t *testing.T) {
	exe := fakeXFoil(t, `cat > script.txt
grep -q '^LOAD airfoil.dat$' script.txt || exit 3
grep -q '^Visc 500000$' script.txt || exit 4
grep -q '^Alfa 1$' script.txt || exit 5
test -s airfoil.dat || exit 6
cat > polar_file.txt <<'EOF'`+fakeReport+`EOF
`)
	workDir := t.TempDir()
	x := NewXFoil(exe)
	x.WorkDir = workDir

	report, err := x.Run(context.Background(), geometryFile(t), polar.DefaultFlowConditions())
	require.NoError(t, err)

	p, err := polar.ExtractRow(report)
	require.NoError(t, err)
	assert.Equal(t, 0.6351, p.CL)

	// scratch dir removed
	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestXFoilFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"exit status", "cat > /dev/null\necho 'segmentation fault' >&2\nexit 2\n", ErrSolverFailed},
		{"no report", "cat > /dev/null\nexit 0\n", ErrNoReport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewXFoil(fakeXFoil(t, tt.body))
			_, err := x.Run(context.Background(), geometryFile(t), polar.DefaultFlowConditions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err)
		})
	}
}

func TestXFoilStderrInError(t *testing.T) {
	x := NewXFoil(fakeXFoil(t, "cat > /dev/null\necho 'convergence failed' >&2\nexit 1\n"))
	_, err := x.Run(context.Background(), geometryFile(t), polar.DefaultFlowConditions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convergence failed")
}

func TestXFoilTimeout(t *testing.T) {
	x := NewXFoil(fakeXFoil(t, "exec sleep 10\n"))
	x.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := x.Run(context.Background(), geometryFile(t), polar.DefaultFlowConditions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSolverFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestXFoilInvalidFlow(t *testing.T) {
	flow := polar.DefaultFlowConditions()
	flow.Mach = 0
	_, err := NewXFoil("xfoil").Run(context.Background(), "unused.dat", flow)
	require.Error(t, err)
}

func TestXFoilMissingGeometry(t *testing.T) {
	x := NewXFoil(fakeXFoil(t, "exit 0\n"))
	_, err := x.Run(context.Background(), filepath.Join(t.TempDir(), "missing.dat"), polar.DefaultFlowConditions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestXFoilRelativeExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake solver needs a POSIX shell")
	}
	dir := t.TempDir()
	body := "#!/bin/sh\ncat > /dev/null\ncat > polar_file.txt <<'EOF'" + fakeReport + "EOF\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xfoil.sh"), []byte(body), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.dat"), []byte("1.0 0.0\n0.0 0.0\n1.0 0.0\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	for _, exe := range []string{"./xfoil.sh", filepath.Join("..", filepath.Base(dir), "xfoil.sh")} {
		x := NewXFoil(exe)
		x.WorkDir = t.TempDir()
		report, err := x.Run(context.Background(), "a.dat", polar.DefaultFlowConditions())
		require.NoError(t, err, exe)
		p, err := polar.ExtractRow(report)
		require.NoError(t, err)
		assert.Equal(t, -0.1083, p.CM)
	}
}
