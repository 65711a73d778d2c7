package nn

import (
	"github.com/chewxy/math32"

	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// ReLU applies f(x) = max(0, x) element-wise.
type ReLU struct {
	tape *autodiff.Tape
}

// NewReLU creates a ReLU activation module.
func NewReLU(tape *autodiff.Tape) *ReLU {
	return &ReLU{tape: tape}
}

// Forward applies the activation.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return r.tape.ReLU(input)
}

// Parameters returns nil; ReLU has no trainable state.
func (r *ReLU) Parameters() []*Parameter { return nil }

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise, squashing values
// into (0, 1).
type Sigmoid struct {
	tape *autodiff.Tape
}

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid(tape *autodiff.Tape) *Sigmoid {
	return &Sigmoid{tape: tape}
}

// Forward applies the activation.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	return s.tape.Sigmoid(input)
}

// Parameters returns nil; Sigmoid has no trainable state.
func (s *Sigmoid) Parameters() []*Parameter { return nil }

// Tanh applies the hyperbolic tangent element-wise, squashing values into
// (-1, 1).
type Tanh struct {
	tape *autodiff.Tape
}

// NewTanh creates a Tanh activation module.
func NewTanh(tape *autodiff.Tape) *Tanh {
	return &Tanh{tape: tape}
}

// Forward applies the activation.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	return t.tape.Tanh(input)
}

// Parameters returns nil; Tanh has no trainable state.
func (t *Tanh) Parameters() []*Parameter { return nil }

// Softmax normalizes each row of a 2-D tensor of raw scores into a
// probability distribution: every output row is non-negative and sums to 1.
//
// This is the plain textbook implementation (with max subtraction for
// stability). It is not recorded on any tape; training goes through the
// fused cross-entropy loss instead, which never materializes probabilities
// on the forward path.
func Softmax(logits *tensor.Tensor) *tensor.Tensor {
	shape := logits.Shape()
	rows, cols := shape[0], shape[1]
	out := tensor.New(shape)
	in := logits.Data()
	dst := out.Data()
	for r := 0; r < rows; r++ {
		row := in[r*cols : (r+1)*cols]
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		sum := float32(0)
		for c, v := range row {
			e := math32.Exp(v - maxVal)
			dst[r*cols+c] = e
			sum += e
		}
		for c := range row {
			dst[r*cols+c] /= sum
		}
	}
	return out
}
