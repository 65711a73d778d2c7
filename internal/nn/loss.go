package nn

import (
	"github.com/minigrad-ml/minigrad/internal/autodiff"
	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class
// classification, using the fused log-softmax + NLL decomposition for
// numerical stability.
//
// Mathematical formulation:
//
//	loss = -mean_b(log_softmax(logits)[b, target_b])
//
// Gradient:
//
//	dloss/dlogits = (softmax(logits) − one_hot(target)) / batch
//
// Expects raw logits; do not apply Softmax before the loss.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss(tape)
//	logits := model.Forward(images)          // [batch, 10]
//	loss := criterion.Forward(logits, labels) // labels: [batch] class indices
type CrossEntropyLoss struct {
	tape *autodiff.Tape
}

// NewCrossEntropyLoss creates a cross-entropy loss recording onto the tape.
func NewCrossEntropyLoss(tape *autodiff.Tape) *CrossEntropyLoss {
	return &CrossEntropyLoss{tape: tape}
}

// Forward computes the scalar mean loss over the batch.
//
// logits has shape [batch, classes]; targets holds class indices in
// [0, classes). Panics on shape mismatch or an out-of-range target.
func (c *CrossEntropyLoss) Forward(logits *tensor.Tensor, targets []int) *tensor.Tensor {
	return c.tape.CrossEntropy(logits, targets)
}
