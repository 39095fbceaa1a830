// Package tensor provides the core tensor types and the backend contract used
// by the segment reduction operators.
package tensor

// DType is a constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// Index is a constraint for the element types accepted as segment ids and
// gather indices.
type Index interface {
	~int32 | ~int64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsSignedInteger reports whether the type is a fixed-width signed integer.
// Only these types may carry segment ids.
func (dt DataType) IsSignedInteger() bool {
	return dt == Int32 || dt == Int64
}

// IsNumeric reports whether arithmetic is defined for the type.
func (dt DataType) IsNumeric() bool {
	return dt != Bool
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}

// DataTypeOf returns the runtime DataType for the Go element type T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	return inferDataType(dummy)
}
