// Package optim implements optimization algorithms for training:
//
//   - Optimizer interface
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Design follows torch.optim: the optimizer owns the parameter list and
// applies a gradient map produced by the autodiff tape.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//	for _, batch := range batches {
//	    opt.ZeroGrad()
//	    loss := criterion.Forward(model.Forward(batch.Images), batch.Labels)
//	    grads := tape.Backward(loss)
//	    opt.Step(grads)
//	    tape.Clear()
//	}
package optim

import (
	"github.com/minigrad-ml/minigrad/internal/nn"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// Optimizer updates model parameters from computed gradients.
type Optimizer interface {
	// Step applies one update to every parameter present in the gradient
	// map returned by Tape.Backward. Parameters that did not participate
	// in the forward pass are skipped.
	Step(grads map[*tensor.Tensor]*tensor.Tensor)

	// ZeroGrad clears all parameter gradients. Call before each backward
	// pass so gradients do not accumulate across iterations.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float32
}

// gradientFor looks up the gradient recorded for a parameter's tensor.
// Returns nil when the parameter was not part of the computation graph.
func gradientFor(param *nn.Parameter, grads map[*tensor.Tensor]*tensor.Tensor) *tensor.Tensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor()]
}
