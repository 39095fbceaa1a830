package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/born-ml/segment/autodiff"
	"github.com/born-ml/segment/backend/cpu"
	"github.com/born-ml/segment/backend/webgpu"
	"github.com/born-ml/segment/segment"
	"github.com/born-ml/segment/tensor"
)

// problem is the JSON input of "segsum run".
//
//	{"x": [1, 2, 3, 4], "shape": [4], "ids": [1, 2, 0, 1], "num_segments": 3, "axis": 0}
//
// dy is optional. Without it the gradient is taken of the plain sum of the
// output (dy filled with ones).
type problem struct {
	X           []float64 `json:"x"`
	Shape       []int     `json:"shape"`
	IDs         []int64   `json:"ids"`
	NumSegments int       `json:"num_segments"`
	Axis        int       `json:"axis"`
	DY          []float64 `json:"dy,omitempty"`
}

// solution is the JSON output of "segsum run".
type solution struct {
	Backend     string    `json:"backend"`
	Output      []float64 `json:"output"`
	OutputShape []int     `json:"output_shape"`
	Grad        []float64 `json:"grad"`
}

func decodeProblem(r io.Reader) (problem, error) {
	var p problem
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return problem{}, errors.Wrap(err, "invalid problem JSON")
	}
	if p.Shape == nil {
		p.Shape = []int{len(p.X)}
	}
	return p, nil
}

func encodeSolution(w io.Writer, s *solution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// solveWith evaluates p on the named backend with the named element type.
func solveWith(backendName, dtype string, p problem, logger *slog.Logger) (*solution, error) {
	switch backendName {
	case "cpu":
		return solveAs(cpu.New(), dtype, p, logger)
	case "webgpu":
		gpu, err := webgpu.New(webgpu.WithLogger(logger))
		if err != nil {
			return nil, errors.WithMessage(err, "webgpu backend")
		}
		defer gpu.Release()
		return solveAs(gpu, dtype, p, logger)
	default:
		return nil, errors.Errorf("unknown backend %q", backendName)
	}
}

func solveAs[B tensor.Backend](inner B, dtype string, p problem, logger *slog.Logger) (*solution, error) {
	switch dtype {
	case "float32":
		return solve[float32](inner, p, logger)
	case "float64":
		return solve[float64](inner, p, logger)
	default:
		return nil, errors.Errorf("unsupported dtype %q", dtype)
	}
}

// solve runs the forward reduction on an autodiff backend wrapping inner and
// differentiates sum(dy * output) with respect to x.
func solve[T float32 | float64, B tensor.Backend](inner B, p problem, logger *slog.Logger) (*solution, error) {
	backend := autodiff.New(inner)
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice(convert[T](p.X), tensor.Shape(p.Shape), backend)
	if err != nil {
		return nil, errors.Wrap(err, "x")
	}
	ids, err := tensor.FromSlice(p.IDs, tensor.Shape{len(p.IDs)}, backend)
	if err != nil {
		return nil, errors.Wrap(err, "ids")
	}

	logger.Debug("segment sum",
		"backend", backend.Name(),
		"shape", p.Shape,
		"num_segments", p.NumSegments,
		"axis", p.Axis)

	out, err := segment.Sum(x, ids, p.NumSegments, p.Axis)
	if err != nil {
		return nil, err
	}

	target := out
	if p.DY != nil {
		dy, err := tensor.FromSlice(convert[T](p.DY), out.Shape(), backend)
		if err != nil {
			return nil, errors.Wrap(err, "dy")
		}
		target = out.Mul(dy).Sum()
	}

	grads := autodiff.Backward(target, backend)

	grad := make([]float64, x.NumElements())
	if g, ok := grads[x.Raw()]; ok {
		grad = g.Float64s()
	}

	return &solution{
		Backend:     inner.Name(),
		Output:      out.Raw().Float64s(),
		OutputShape: []int(out.Shape()),
		Grad:        grad,
	}, nil
}

func convert[T float32 | float64](values []float64) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
