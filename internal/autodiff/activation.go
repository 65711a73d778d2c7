package autodiff

import (
	"github.com/chewxy/math32"

	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// reluOp: f(x) = max(0, x). df/dx = 1 where x > 0, else 0.
type reluOp struct {
	x, out *tensor.Tensor
}

func (op *reluOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x} }
func (op *reluOp) Output() *tensor.Tensor   { return op.out }

func (op *reluOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	out := tensor.New(op.x.Shape())
	in := op.x.Data()
	g := grad.Data()
	dst := out.Data()
	for i := range dst {
		if in[i] > 0 {
			dst[i] = g[i]
		}
	}
	return []*tensor.Tensor{out}
}

// ReLU applies the rectified linear unit element-wise and records the
// operation.
func (t *Tape) ReLU(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.New(x.Shape())
	in := x.Data()
	dst := out.Data()
	for i, v := range in {
		if v > 0 {
			dst[i] = v
		}
	}
	t.record(&reluOp{x: x, out: out})
	return out
}

// sigmoidOp: σ(x) = 1 / (1 + exp(-x)).
// Uses the computed output for the gradient: dσ/dx = σ(x)·(1 − σ(x)).
type sigmoidOp struct {
	x, out *tensor.Tensor
}

func (op *sigmoidOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x} }
func (op *sigmoidOp) Output() *tensor.Tensor   { return op.out }

func (op *sigmoidOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	out := tensor.New(op.x.Shape())
	y := op.out.Data()
	g := grad.Data()
	dst := out.Data()
	for i := range dst {
		dst[i] = g[i] * y[i] * (1 - y[i])
	}
	return []*tensor.Tensor{out}
}

// Sigmoid applies the logistic function element-wise and records the
// operation.
func (t *Tape) Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.New(x.Shape())
	in := x.Data()
	dst := out.Data()
	for i, v := range in {
		dst[i] = 1 / (1 + math32.Exp(-v))
	}
	t.record(&sigmoidOp{x: x, out: out})
	return out
}

// tanhOp: d(tanh x)/dx = 1 − tanh²(x).
type tanhOp struct {
	x, out *tensor.Tensor
}

func (op *tanhOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.x} }
func (op *tanhOp) Output() *tensor.Tensor   { return op.out }

func (op *tanhOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	out := tensor.New(op.x.Shape())
	y := op.out.Data()
	g := grad.Data()
	dst := out.Data()
	for i := range dst {
		dst[i] = g[i] * (1 - y[i]*y[i])
	}
	return []*tensor.Tensor{out}
}

// Tanh applies the hyperbolic tangent element-wise and records the operation.
func (t *Tape) Tanh(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.New(x.Shape())
	in := x.Data()
	dst := out.Data()
	for i, v := range in {
		dst[i] = math32.Tanh(v)
	}
	t.record(&tanhOp{x: x, out: out})
	return out
}
