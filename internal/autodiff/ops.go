package autodiff

import "github.com/minigrad-ml/minigrad/internal/tensor"

// addOp: element-wise addition. d(a+b)/da = 1, d(a+b)/db = 1.
type addOp struct {
	a, b, out *tensor.Tensor
}

func (op *addOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.a, op.b} }
func (op *addOp) Output() *tensor.Tensor   { return op.out }

func (op *addOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{grad.Clone(), grad.Clone()}
}

// Add performs element-wise addition and records the operation.
func (t *Tape) Add(a, b *tensor.Tensor) *tensor.Tensor {
	out := a.Add(b)
	t.record(&addOp{a: a, b: b, out: out})
	return out
}

// subOp: element-wise subtraction. d(a-b)/da = 1, d(a-b)/db = -1.
type subOp struct {
	a, b, out *tensor.Tensor
}

func (op *subOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.a, op.b} }
func (op *subOp) Output() *tensor.Tensor   { return op.out }

func (op *subOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{grad.Clone(), grad.Scale(-1)}
}

// Sub performs element-wise subtraction and records the operation.
func (t *Tape) Sub(a, b *tensor.Tensor) *tensor.Tensor {
	out := a.Sub(b)
	t.record(&subOp{a: a, b: b, out: out})
	return out
}

// mulOp: element-wise multiplication. d(a*b)/da = b, d(a*b)/db = a.
type mulOp struct {
	a, b, out *tensor.Tensor
}

func (op *mulOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.a, op.b} }
func (op *mulOp) Output() *tensor.Tensor   { return op.out }

func (op *mulOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{grad.Mul(op.b), grad.Mul(op.a)}
}

// Mul performs element-wise multiplication and records the operation.
func (t *Tape) Mul(a, b *tensor.Tensor) *tensor.Tensor {
	out := a.Mul(b)
	t.record(&mulOp{a: a, b: b, out: out})
	return out
}

// matMulOp: matrix multiplication C = A @ B.
//
//	dA = grad @ B^T
//	dB = A^T @ grad
type matMulOp struct {
	a, b, out *tensor.Tensor
}

func (op *matMulOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.a, op.b} }
func (op *matMulOp) Output() *tensor.Tensor   { return op.out }

func (op *matMulOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	gradA := grad.MatMul(op.b.Transpose())
	gradB := op.a.Transpose().MatMul(grad)
	return []*tensor.Tensor{gradA, gradB}
}

// MatMul performs matrix multiplication and records the operation.
func (t *Tape) MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	out := a.MatMul(b)
	t.record(&matMulOp{a: a, b: b, out: out})
	return out
}

// addBiasOp: broadcast addition of a bias row vector to every row.
// The bias gradient is the output gradient summed over rows.
type addBiasOp struct {
	x, bias, out *tensor.Tensor
}

func (op *addBiasOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x, op.bias} }
func (op *addBiasOp) Output() *tensor.Tensor   { return op.out }

func (op *addBiasOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{grad.Clone(), grad.SumRows()}
}

// AddBias adds a bias vector [n] to every row of x [m, n] and records the
// operation.
func (t *Tape) AddBias(x, bias *tensor.Tensor) *tensor.Tensor {
	out := x.AddRow(bias)
	t.record(&addBiasOp{x: x, bias: bias, out: out})
	return out
}

// reshapeOp: shape change, identity on values.
type reshapeOp struct {
	x, out *tensor.Tensor
}

func (op *reshapeOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x} }
func (op *reshapeOp) Output() *tensor.Tensor   { return op.out }

func (op *reshapeOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	shape := op.x.Shape()
	return []*tensor.Tensor{grad.Clone().Reshape(shape...)}
}

// Reshape changes the tensor's shape (e.g. flattening [64, 1, 28, 28] into
// [64, 784]) and records the operation. Gradients reshape back.
func (t *Tape) Reshape(x *tensor.Tensor, dims ...int) *tensor.Tensor {
	out := x.Clone().Reshape(dims...)
	t.record(&reshapeOp{x: x, out: out})
	return out
}

// meanOp: mean over all elements, producing a scalar.
// d(mean)/dx_i = 1/N.
type meanOp struct {
	x, out *tensor.Tensor
}

func (op *meanOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x} }
func (op *meanOp) Output() *tensor.Tensor   { return op.out }

func (op *meanOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	n := float32(op.x.NumElements())
	return []*tensor.Tensor{tensor.Full(op.x.Shape(), grad.Item()/n)}
}

// Mean reduces the tensor to the mean of its elements and records the
// operation. The result has shape [1].
func (t *Tape) Mean(x *tensor.Tensor) *tensor.Tensor {
	sum := float32(0)
	for _, v := range x.Data() {
		sum += v
	}
	out := tensor.Full(tensor.Shape{1}, sum/float32(x.NumElements()))
	t.record(&meanOp{x: x, out: out})
	return out
}
