package polar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// divider separates the report header from the data rows.
const divider = "------"

// Columns of a data row, in report order.
var columns = []string{"alpha", "CL", "CD", "CDp", "CM"}

var ErrParse = errors.New("malformed polar report")

// ParseError reports the line that could not be read. Line is empty when the
// report ended before a data row was found.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("%v: %s", ErrParse, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %q", ErrParse, e.Reason, e.Line)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Polar is one operating point of a polar report.
type Polar struct {
	Alpha float64 `json:"alpha"`
	CL    float64 `json:"cl"`
	CD    float64 `json:"cd"`
	CDp   float64 `json:"cdp"`
	CM    float64 `json:"cm"`
}

// ExtractRow returns the first data row after the first divider of report.
func ExtractRow(report string) (Polar, error) {
	return ReadRow(strings.NewReader(report))
}

// ReadRow is ExtractRow reading from r. Anything after the first data row
// is not consumed.
func ReadRow(r io.Reader) (Polar, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if !strings.Contains(sc.Text(), divider) {
			continue
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Polar{}, fmt.Errorf("reading polar report: %w", err)
			}
			return Polar{}, &ParseError{Reason: "no data row after divider"}
		}
		return parseRow(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Polar{}, fmt.Errorf("reading polar report: %w", err)
	}
	return Polar{}, &ParseError{Reason: "no divider line"}
}

func parseRow(line string) (Polar, error) {
	fields := strings.Fields(line)
	if len(fields) < len(columns) {
		return Polar{}, &ParseError{Line: line, Reason: fmt.Sprintf("want %d columns, got %d", len(columns), len(fields))}
	}

	var v [5]float64
	for i := range columns {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Polar{}, &ParseError{Line: line, Reason: fmt.Sprintf("column %s: %v", columns[i], err)}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Polar{}, &ParseError{Line: line, Reason: fmt.Sprintf("column %s: not a finite number", columns[i])}
		}
		v[i] = f
	}
	return Polar{Alpha: v[0], CL: v[1], CD: v[2], CDp: v[3], CM: v[4]}, nil
}
