package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"naca/polar"
)

// File names inside the scratch directory of a run.
const (
	geometryFileName = "airfoil.dat"
	polarFileName    = "polar_file.txt"
)

const (
	stderrTail = 512 // bytes of stderr kept for error messages
	waitDelay  = 2 * time.Second
)

var (
	ErrSolverFailed = errors.New("solver failed")
	ErrNoReport     = errors.New("solver produced no polar report")
)

// Runner produces a polar report for a coordinate file at the given flow
// conditions.
type Runner interface {
	Run(ctx context.Context, geometryPath string, flow polar.FlowConditions) (string, error)
}

// XFoil runs an XFOIL executable with a generated command script on stdin.
// Each run works in its own scratch directory under WorkDir (the system
// temp dir when empty) which is removed afterwards.
type XFoil struct {
	Executable string
	WorkDir    string
	Iterations int
	Timeout    time.Duration
}

func NewXFoil(executable string) *XFoil {
	return &XFoil{
		Executable: executable,
		Iterations: DefaultIterations,
	}
}

func (x *XFoil) Run(ctx context.Context, geometryPath string, flow polar.FlowConditions) (string, error) {
	if err := flow.Validate(); err != nil {
		return "", err
	}
	exe, err := x.executable()
	if err != nil {
		return "", fmt.Errorf("resolving solver executable: %w", err)
	}
	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp(x.WorkDir, "xfoil-")
	if err != nil {
		return "", fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := copyFile(geometryPath, filepath.Join(dir, geometryFileName)); err != nil {
		return "", fmt.Errorf("copying geometry: %w", err)
	}

	var script bytes.Buffer
	err = WriteScript(&script, Script{
		GeometryFile: geometryFileName,
		PolarFile:    polarFileName,
		Reynolds:     flow.Reynolds,
		Mach:         flow.Mach,
		Alpha:        flow.Alpha,
		Iterations:   x.Iterations,
	})
	if err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe)
	cmd.Dir = dir
	cmd.Stdin = &script
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err = cmd.Run()
	fields := log.Fields{
		"executable": x.Executable,
		"reynolds":   flow.Reynolds,
		"mach":       flow.Mach,
		"alpha":      flow.Alpha,
		"duration":   time.Since(start).String(),
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.WithFields(fields).Warn("solver interrupted")
		return "", fmt.Errorf("%w: %w", ErrSolverFailed, ctxErr)
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("solver failed")
		return "", fmt.Errorf("%w: %v: %s", ErrSolverFailed, err, tail(stderr.Bytes()))
	}
	log.WithFields(fields).Info("solver finished")

	report, err := os.ReadFile(filepath.Join(dir, polarFileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoReport
	} else if err != nil {
		return "", fmt.Errorf("reading polar report: %w", err)
	}
	return string(report), nil
}

// executable returns Executable with a relative path made absolute, since the
// process runs inside the scratch dir. Bare names are left to the PATH lookup.
func (x *XFoil) executable() (string, error) {
	if !strings.ContainsAny(x.Executable, "/"+string(filepath.Separator)) || filepath.IsAbs(x.Executable) {
		return x.Executable, nil
	}
	return filepath.Abs(x.Executable)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func tail(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) > stderrTail {
		b = b[len(b)-stderrTail:]
	}
	return b
}
