package cpu

import (
	"fmt"

	"github.com/born-ml/segment/internal/tensor"
)

type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opMul
	opMax
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opMul:
		return "mul"
	case opMax:
		return "maximum"
	default:
		return "unknown"
	}
}

func arith[E number](op binaryOp) func(a, b E) E {
	switch op {
	case opAdd:
		return func(a, b E) E { return a + b }
	case opMul:
		return func(a, b E) E { return a * b }
	case opMax:
		return func(a, b E) E {
			if a > b {
				return a
			}
			return b
		}
	default:
		panic("unknown binary op")
	}
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryNumeric(opAdd, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryNumeric(opMul, a, b)
}

// Maximum returns max(a, b) element-wise with broadcasting.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryNumeric(opMax, a, b)
}

func (cpu *CPUBackend) binaryNumeric(op binaryOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.newResult(op.String(), outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		applyBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, arith[float32](op))
	case tensor.Float64:
		applyBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, arith[float64](op))
	case tensor.Int32:
		applyBinary(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, arith[int32](op))
	case tensor.Int64:
		applyBinary(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, arith[int64](op))
	case tensor.Uint8:
		applyBinary(result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, arith[uint8](op))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}

	return result
}

// GreaterEqual returns a >= b element-wise as a bool tensor.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("greaterEqual: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("greaterEqual: %v", err))
	}

	result := cpu.newResult("greaterEqual", outShape, tensor.Bool)
	dst := result.AsBool()

	switch a.DType() {
	case tensor.Float32:
		applyBinary(dst, a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, ge[float32])
	case tensor.Float64:
		applyBinary(dst, a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, ge[float64])
	case tensor.Int32:
		applyBinary(dst, a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, ge[int32])
	case tensor.Int64:
		applyBinary(dst, a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, ge[int64])
	case tensor.Uint8:
		applyBinary(dst, a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, ge[uint8])
	default:
		panic(fmt.Sprintf("greaterEqual: unsupported dtype %s", a.DType()))
	}

	return result
}

func ge[E number](a, b E) bool { return a >= b }

// Where performs conditional element selection with broadcasting:
// output[i] = x[i] if condition[i] else y[i].
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	outShape, _, err = tensor.BroadcastShapes(condition.Shape(), outShape)
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	result := cpu.newResult("where", outShape, x.DType())
	strides := [][]int{
		tensor.BroadcastStrides(condition.Shape(), outShape),
		tensor.BroadcastStrides(x.Shape(), outShape),
		tensor.BroadcastStrides(y.Shape(), outShape),
	}
	cond := condition.AsBool()

	switch x.DType() {
	case tensor.Float32:
		selectWhere(result.AsFloat32(), cond, x.AsFloat32(), y.AsFloat32(), outShape, strides)
	case tensor.Float64:
		selectWhere(result.AsFloat64(), cond, x.AsFloat64(), y.AsFloat64(), outShape, strides)
	case tensor.Int32:
		selectWhere(result.AsInt32(), cond, x.AsInt32(), y.AsInt32(), outShape, strides)
	case tensor.Int64:
		selectWhere(result.AsInt64(), cond, x.AsInt64(), y.AsInt64(), outShape, strides)
	case tensor.Uint8:
		selectWhere(result.AsUint8(), cond, x.AsUint8(), y.AsUint8(), outShape, strides)
	case tensor.Bool:
		selectWhere(result.AsBool(), cond, x.AsBool(), y.AsBool(), outShape, strides)
	default:
		panic(fmt.Sprintf("where: unsupported dtype %s", x.DType()))
	}

	return result
}

// applyBinary computes dst = f(a, b) over the broadcast of aShape and bShape.
func applyBinary[E, R any](dst []R, a, b []E, aShape, bShape, outShape tensor.Shape, f func(E, E) R) {
	if aShape.Equal(outShape) && bShape.Equal(outShape) {
		for i := range dst {
			dst[i] = f(a[i], b[i])
		}
		return
	}

	strides := [][]int{
		tensor.BroadcastStrides(aShape, outShape),
		tensor.BroadcastStrides(bShape, outShape),
	}
	forEachBroadcast(outShape, strides, func(i int, offs []int) {
		dst[i] = f(a[offs[0]], b[offs[1]])
	})
}

func selectWhere[E any](dst []E, cond []bool, x, y []E, outShape tensor.Shape, strides [][]int) {
	forEachBroadcast(outShape, strides, func(i int, offs []int) {
		if cond[offs[0]] {
			dst[i] = x[offs[1]]
		} else {
			dst[i] = y[offs[2]]
		}
	})
}
