// Package loader parses training datasets into the column-vector pairs the
// network consumes.
//
// The on-disk format is one sample per line, input values first, then a
// single comma, then target values; values within a vector are separated by
// single spaces:
//
//	5 10 15,1 2 3
//	20 25 30,4 5 6
//
// A load is all-or-nothing: if any line fails to parse, or disagrees with
// the rest on vector widths, the whole load is abandoned and no partial
// dataset is returned.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/strata-ml/strata/internal/tensor"
)

// ErrBadSample is returned when a dataset line cannot be parsed into an
// input/target pair consistent with the rest of the file.
var ErrBadSample = errors.New("malformed sample")

// Dataset is an ordered, index-aligned collection of training pairs. Each
// entry is a column vector; all inputs share one width and all targets
// another.
type Dataset struct {
	Inputs  []*tensor.Matrix
	Targets []*tensor.Matrix
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Inputs) }

// Load reads a dataset file. See the package documentation for the format.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a dataset from r. Blank lines are skipped; everything else
// must parse cleanly or the whole read fails.
func Read(r io.Reader) (*Dataset, error) {
	var (
		inputs    []*tensor.Matrix
		targets   []*tensor.Matrix
		inWidth   int
		outWidth  int
		lineCount int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineCount++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: line %d: expected one comma between input and target", ErrBadSample, lineCount)
		}

		in, err := parseVector(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d input: %v", ErrBadSample, lineCount, err)
		}
		out, err := parseVector(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d target: %v", ErrBadSample, lineCount, err)
		}

		if inputs == nil {
			inWidth, outWidth = in.Rows(), out.Rows()
		} else if in.Rows() != inWidth || out.Rows() != outWidth {
			return nil, fmt.Errorf("%w: line %d: widths %d/%d disagree with %d/%d",
				ErrBadSample, lineCount, in.Rows(), out.Rows(), inWidth, outWidth)
		}

		inputs = append(inputs, in)
		targets = append(targets, out)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrBadSample)
	}
	return &Dataset{Inputs: inputs, Targets: targets}, nil
}

// FromSlices builds an in-memory dataset from parallel value slices.
func FromSlices(inputs, targets [][]float64) (*Dataset, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("%w: %d inputs but %d targets", ErrBadSample, len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrBadSample)
	}
	ds := &Dataset{
		Inputs:  make([]*tensor.Matrix, len(inputs)),
		Targets: make([]*tensor.Matrix, len(targets)),
	}
	for i := range inputs {
		if len(inputs[i]) != len(inputs[0]) || len(targets[i]) != len(targets[0]) {
			return nil, fmt.Errorf("%w: sample %d widths disagree with sample 0", ErrBadSample, i)
		}
		ds.Inputs[i] = tensor.FromColumn(inputs[i])
		ds.Targets[i] = tensor.FromColumn(targets[i])
	}
	return ds, nil
}

func parseVector(s string) (*tensor.Matrix, error) {
	fields := strings.Split(strings.TrimSpace(s), " ")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %q is not a number", i, f)
		}
		values[i] = v
	}
	return tensor.FromColumn(values), nil
}
