// Package nn implements neural network building blocks:
//
//   - Module interface: base contract for all network components
//   - Parameter: trainable tensor with a gradient slot
//   - Linear: fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - CrossEntropyLoss: fused log-softmax + NLL loss
//   - Sequential: container for stacking layers
//
// Design follows PyTorch's nn.Module, adapted to explicit tape wiring: every
// layer that computes holds the autodiff tape it records onto.
package nn

import "github.com/minigrad-ml/minigrad/internal/tensor"

// Module is the base interface for all neural network components.
//
// Modules compose into larger networks:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, tape),
//	    nn.NewReLU(tape),
//	    nn.NewLinear(128, 10, tape),
//	)
type Module interface {
	// Forward computes the module's output for the given input.
	// Linear expects [batch, in_features]; activations accept any shape.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module, including
	// nested ones. Modules without state (activations) return nil.
	Parameters() []*Parameter
}
