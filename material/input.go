// Package material models the values bound to shader-visible surface
// properties (base color, normal, glossiness, metallic, position offset).
//
// A material input is a closed tagged variant over three shapes:
//
//   - a constant scalar, uploaded as a specialized uniform input;
//   - a constant vector, uploaded as a raw uniform value;
//   - a compiled expression, bound as a named material input that the
//     shader system resolves to a texture or sub-graph.
//
// Classification happens once at assignment time, not at drain time,
// because compiling an expression is a one-time, possibly expensive
// operation that must not repeat per frame.
package material

// Kind identifies the shape of a material input value.
type Kind uint8

const (
	// KindScalar is a plain numeric constant.
	KindScalar Kind = iota

	// KindVector is a constant vector or array of floats.
	KindVector

	// KindExpression is anything else: a compiled material graph result
	// or an opaque payload passed through uninterpreted for the
	// downstream shader binding to accept or reject.
	KindExpression
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindVector:
		return "Vector"
	case KindExpression:
		return "Expression"
	default:
		return "Unknown"
	}
}

// Compilable is the capability interface for inputs that carry a one-time
// compile step. Resolve converts the expression into its bindable
// representation; once resolved, the result is treated as a constant.
// Non-compilable inputs bypass it entirely.
type Compilable interface {
	Resolve() (any, error)
}

// Input is the classified form of a material input value, resolved once
// at assignment time and cached.
type Input struct {
	kind   Kind
	scalar float32
	vector []float32
	value  any
}

// Classify determines the input shape of an already-resolved value.
// Numeric constants classify as scalars, float vectors and arrays as
// vectors, and everything else passes through as an expression payload.
// Classify never rejects a value; validation belongs downstream.
func Classify(v any) Input {
	switch val := v.(type) {
	case float32:
		return Input{kind: KindScalar, scalar: val, value: v}
	case float64:
		return Input{kind: KindScalar, scalar: float32(val), value: v}
	case int:
		return Input{kind: KindScalar, scalar: float32(val), value: v}
	case []float32:
		return Input{kind: KindVector, vector: val, value: v}
	case [2]float32:
		return Input{kind: KindVector, vector: val[:], value: v}
	case [3]float32:
		return Input{kind: KindVector, vector: val[:], value: v}
	case [4]float32:
		return Input{kind: KindVector, vector: val[:], value: v}
	default:
		return Input{kind: KindExpression, value: v}
	}
}

// Kind returns the classified shape.
func (in Input) Kind() Kind { return in.kind }

// Scalar returns the scalar constant. Valid only for KindScalar.
func (in Input) Scalar() float32 { return in.scalar }

// Vector returns the vector constant. Valid only for KindVector.
func (in Input) Vector() []float32 { return in.vector }

// Value returns the original (post-resolve) value regardless of kind.
func (in Input) Value() any { return in.value }
