package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

func checkSameShape(op string, a, b *Tensor) {
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.shape, b.shape))
	}
}

// Add returns the element-wise sum a + b. Shapes must match.
func (t *Tensor) Add(other *Tensor) *Tensor {
	checkSameShape("Add", t, other)
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = v + other.data[i]
	}
	return out
}

// Sub returns the element-wise difference a - b. Shapes must match.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	checkSameShape("Sub", t, other)
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = v - other.data[i]
	}
	return out
}

// Mul returns the element-wise (Hadamard) product a * b. Shapes must match.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	checkSameShape("Mul", t, other)
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = v * other.data[i]
	}
	return out
}

// Scale returns the tensor multiplied by a scalar.
func (t *Tensor) Scale(s float32) *Tensor {
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = v * s
	}
	return out
}

// AddInPlace accumulates other into t. Shapes must match.
func (t *Tensor) AddInPlace(other *Tensor) {
	checkSameShape("AddInPlace", t, other)
	for i, v := range other.data {
		t.data[i] += v
	}
}

// MatMul computes the matrix product of two 2-D tensors.
// [m, k] @ [k, n] = [m, n]. The multiply is dispatched to gonum's
// float32 GEMM rather than a naive triple loop.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("MatMul: expected 2D tensors, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("MatMul: inner dimensions mismatch %v @ %v", t.shape, other.shape))
	}

	out := New(Shape{m, n})
	a := blas32.General{Rows: m, Cols: k, Stride: k, Data: t.data}
	b := blas32.General{Rows: k, Cols: n, Stride: n, Data: other.data}
	c := blas32.General{Rows: m, Cols: n, Stride: n, Data: out.data}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, a, b, 0, c)
	return out
}

// Transpose returns the transpose of a 2-D tensor as a new tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Transpose: expected 2D tensor, got %v", t.shape))
	}
	rows, cols := t.shape[0], t.shape[1]
	out := New(Shape{cols, rows})
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.data[c*rows+r] = t.data[r*cols+c]
		}
	}
	return out
}

// AddRow adds a row vector to every row of a 2-D tensor.
// t has shape [m, n], row has shape [n]. Used for bias broadcasting.
func (t *Tensor) AddRow(row *Tensor) *Tensor {
	if len(t.shape) != 2 || len(row.shape) != 1 || t.shape[1] != row.shape[0] {
		panic(fmt.Sprintf("AddRow: cannot broadcast %v over %v", row.shape, t.shape))
	}
	m, n := t.shape[0], t.shape[1]
	out := New(t.shape)
	for r := 0; r < m; r++ {
		base := r * n
		for c := 0; c < n; c++ {
			out.data[base+c] = t.data[base+c] + row.data[c]
		}
	}
	return out
}

// SumRows sums a 2-D tensor over its rows, producing a [n] vector.
// This is the adjoint of AddRow broadcasting.
func (t *Tensor) SumRows() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("SumRows: expected 2D tensor, got %v", t.shape))
	}
	m, n := t.shape[0], t.shape[1]
	out := New(Shape{n})
	for r := 0; r < m; r++ {
		base := r * n
		for c := 0; c < n; c++ {
			out.data[c] += t.data[base+c]
		}
	}
	return out
}

// ArgMaxRows returns, for each row of a 2-D tensor, the column index of its
// maximum value. Ties resolve to the lowest index.
func (t *Tensor) ArgMaxRows() []int {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("ArgMaxRows: expected 2D tensor, got %v", t.shape))
	}
	m, n := t.shape[0], t.shape[1]
	out := make([]int, m)
	for r := 0; r < m; r++ {
		base := r * n
		best := 0
		for c := 1; c < n; c++ {
			if t.data[base+c] > t.data[base+best] {
				best = c
			}
		}
		out[r] = best
	}
	return out
}
