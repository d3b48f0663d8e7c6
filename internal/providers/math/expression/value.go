package expression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kind discriminates Value shapes
type Kind uint8

const (
	KindScalar Kind = iota
	KindSequence
	KindGrid
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Value is a Scalar, a 1D Sequence or a 2D row-major Grid of float64.
//
// Values are immutable once built: operations always allocate new backing
// storage and never write into an operand.
type Value struct {
	kind Kind
	num  float64
	data []float64
	rows int
	cols int
}

// Scalar wraps a single number
func Scalar(v float64) Value {
	return Value{kind: KindScalar, num: v}
}

// Sequence wraps a 1D sample array. The slice is shared, not copied, and
// must not be modified afterwards.
func Sequence(data []float64) Value {
	return Value{kind: KindSequence, data: data, rows: 1, cols: len(data)}
}

// Grid wraps a 2D matrix. The matrix contents are copied.
func Grid(m mat.Matrix) Value {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return Value{kind: KindGrid, data: data, rows: r, cols: c}
}

// Kind returns the value's shape class
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v holds a single number
func (v Value) IsScalar() bool { return v.kind == KindScalar }

// Float returns the scalar value; for arrays it returns the first element
func (v Value) Float() float64 {
	if v.kind == KindScalar {
		return v.num
	}
	if len(v.data) == 0 {
		return 0
	}
	return v.data[0]
}

// Len returns the number of elements (1 for scalars)
func (v Value) Len() int {
	if v.kind == KindScalar {
		return 1
	}
	return len(v.data)
}

// Dims returns rows and columns. Sequences are 1×n, scalars 0×0.
func (v Value) Dims() (int, int) {
	if v.kind == KindScalar {
		return 0, 0
	}
	return v.rows, v.cols
}

// Floats returns a copy of the element data in row-major order
func (v Value) Floats() []float64 {
	if v.kind == KindScalar {
		return []float64{v.num}
	}
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Rows returns grid data as a slice of rows (a single row for sequences)
func (v Value) Rows() [][]float64 {
	if v.kind == KindScalar {
		return [][]float64{{v.num}}
	}
	out := make([][]float64, v.rows)
	for i := range out {
		row := make([]float64, v.cols)
		copy(row, v.data[i*v.cols:(i+1)*v.cols])
		out[i] = row
	}
	return out
}

// Dense returns the value as a gonum matrix
func (v Value) Dense() *mat.Dense {
	switch v.kind {
	case KindScalar:
		return mat.NewDense(1, 1, []float64{v.num})
	default:
		return mat.NewDense(v.rows, v.cols, v.Floats())
	}
}

// SameShape reports whether v and other have identical shape
func (v Value) SameShape(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	return v.kind == KindScalar || (v.rows == other.rows && v.cols == other.cols)
}

// BroadcastTo expands a scalar to the shape of like. Non-scalar values are
// returned unchanged.
func (v Value) BroadcastTo(like Value) Value {
	if v.kind != KindScalar || like.kind == KindScalar {
		return v
	}
	data := make([]float64, len(like.data))
	for i := range data {
		data[i] = v.num
	}
	return Value{kind: like.kind, data: data, rows: like.rows, cols: like.cols}
}

// Shape renders the shape numpy style: "()", "(1000,)", "(31, 31)"
func (v Value) Shape() string {
	switch v.kind {
	case KindScalar:
		return "()"
	case KindSequence:
		return fmt.Sprintf("(%d,)", v.cols)
	default:
		return fmt.Sprintf("(%d, %d)", v.rows, v.cols)
	}
}

func (v Value) String() string {
	if v.kind == KindScalar {
		return fmt.Sprintf("%g", v.num)
	}
	return fmt.Sprintf("%s%s", v.kind, v.Shape())
}

// apply1 maps fn over every element
func apply1(v Value, fn func(float64) float64) Value {
	if v.kind == KindScalar {
		return Scalar(fn(v.num))
	}
	data := make([]float64, len(v.data))
	for i, x := range v.data {
		data[i] = fn(x)
	}
	return Value{kind: v.kind, data: data, rows: v.rows, cols: v.cols}
}

// apply2 combines two values element-wise with scalar broadcasting
func apply2(a, b Value, fn func(float64, float64) float64) (Value, error) {
	switch {
	case a.kind == KindScalar && b.kind == KindScalar:
		return Scalar(fn(a.num, b.num)), nil

	case a.kind == KindScalar:
		data := make([]float64, len(b.data))
		for i, y := range b.data {
			data[i] = fn(a.num, y)
		}
		return Value{kind: b.kind, data: data, rows: b.rows, cols: b.cols}, nil

	case b.kind == KindScalar:
		data := make([]float64, len(a.data))
		for i, x := range a.data {
			data[i] = fn(x, b.num)
		}
		return Value{kind: a.kind, data: data, rows: a.rows, cols: a.cols}, nil
	}

	if !a.SameShape(b) {
		return Value{}, fmt.Errorf("operands could not be broadcast together with shapes %s %s", a.Shape(), b.Shape())
	}
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = fn(a.data[i], b.data[i])
	}
	return Value{kind: a.kind, data: data, rows: a.rows, cols: a.cols}, nil
}
