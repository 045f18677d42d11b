// Package array provides the core array types for the ufunc evaluator.
package array

// DType is a constraint for supported array element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported element types.
const (
	Int16 DataType = iota
	Int32
	Int64
	Float32
	Float64
)

// Kind classifies element types into numeric families.
// Promotion never crosses kind boundaries.
type Kind int

// Numeric kinds.
const (
	KindInt Kind = iota
	KindFloat
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// Kind returns the numeric kind of the data type.
func (dt DataType) Kind() Kind {
	switch dt {
	case Int16, Int32, Int64:
		return KindInt
	case Float32, Float64:
		return KindFloat
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// PromotesTo reports whether values of dt can be widened to target
// without loss. Promotion is widening-only and never crosses kinds:
// int16 → int32 → int64 and float32 → float64. A type promotes to itself.
func (dt DataType) PromotesTo(target DataType) bool {
	if dt == target {
		return true
	}
	if dt.Kind() != target.Kind() {
		return false
	}
	return dt.Size() < target.Size()
}

// TypeOf returns the DataType tag for a generic element type T.
func TypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
