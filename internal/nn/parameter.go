package nn

import "github.com/minigrad-ml/minigrad/internal/tensor"

// Parameter is a trainable tensor in a neural network, typically a layer's
// weight or bias. The gradient slot is filled in by the optimizer after each
// backward pass and cleared by ZeroGrad.
type Parameter struct {
	name   string
	tensor *tensor.Tensor
	grad   *tensor.Tensor
}

// NewParameter creates a trainable parameter wrapping an initialized tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{name: name, tensor: t}
}

// Name returns the parameter name (e.g. "weight", "bias").
func (p *Parameter) Name() string { return p.name }

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor { return p.tensor }

// Grad returns the last computed gradient, or nil before any backward pass.
func (p *Parameter) Grad() *tensor.Tensor { return p.grad }

// SetGrad stores the gradient tensor. Called by the optimizer.
func (p *Parameter) SetGrad(grad *tensor.Tensor) { p.grad = grad }

// ZeroGrad clears the gradient. Call before each training iteration so
// gradients from the previous batch cannot leak into the next update.
func (p *Parameter) ZeroGrad() { p.grad = nil }
