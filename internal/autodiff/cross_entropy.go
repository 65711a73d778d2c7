package autodiff

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// crossEntropyOp fuses log-softmax and negative log-likelihood.
//
// Forward:
//
//	loss = -mean_b(log_softmax(logits)[b, target_b])
//
// Backward:
//
//	dloss/dlogits = (softmax(logits) − one_hot(target)) / batch
//
// The softmax probabilities computed during the forward pass are cached and
// reused in Backward.
type crossEntropyOp struct {
	logits  *tensor.Tensor
	targets []int
	probs   *tensor.Tensor // softmax(logits), [batch, classes]
	out     *tensor.Tensor // scalar mean loss
}

func (op *crossEntropyOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.logits} }
func (op *crossEntropyOp) Output() *tensor.Tensor   { return op.out }

func (op *crossEntropyOp) Backward(grad *tensor.Tensor) []*tensor.Tensor {
	shape := op.logits.Shape()
	batch, classes := shape[0], shape[1]

	scale := grad.Item() / float32(batch)
	out := tensor.New(shape)
	p := op.probs.Data()
	dst := out.Data()
	for b := 0; b < batch; b++ {
		base := b * classes
		for c := 0; c < classes; c++ {
			g := p[base+c]
			if c == op.targets[b] {
				g -= 1
			}
			dst[base+c] = g * scale
		}
	}
	return []*tensor.Tensor{out}
}

// CrossEntropy computes the mean cross-entropy loss between raw logits
// [batch, classes] and integer class targets [batch], recording the fused
// operation on the tape.
//
// Log-softmax is computed with the log-sum-exp trick: the row maximum is
// subtracted before exponentiating, so large logits cannot overflow float32.
//
// Panics if shapes disagree or a target index is out of range.
func (t *Tape) CrossEntropy(logits *tensor.Tensor, targets []int) *tensor.Tensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("CrossEntropy: logits must be 2D [batch, classes], got %v", shape))
	}
	batch, classes := shape[0], shape[1]
	if len(targets) != batch {
		panic(fmt.Sprintf("CrossEntropy: got %d targets for batch of %d", len(targets), batch))
	}

	probs := tensor.New(shape)
	in := logits.Data()
	p := probs.Data()
	totalLoss := float32(0)

	for b := 0; b < batch; b++ {
		target := targets[b]
		if target < 0 || target >= classes {
			panic(fmt.Sprintf("CrossEntropy: target %d out of range [0, %d) at row %d", target, classes, b))
		}

		row := in[b*classes : (b+1)*classes]

		maxLogit := row[0]
		for _, v := range row[1:] {
			if v > maxLogit {
				maxLogit = v
			}
		}

		sumExp := float32(0)
		for c, v := range row {
			e := math32.Exp(v - maxLogit)
			p[b*classes+c] = e
			sumExp += e
		}
		logSumExp := math32.Log(sumExp)
		for c := range row {
			p[b*classes+c] /= sumExp
		}

		// -log_softmax(row)[target]
		totalLoss += logSumExp - (row[target] - maxLogit)
	}

	out := tensor.Full(tensor.Shape{1}, totalLoss/float32(batch))

	// Targets are copied so callers may reuse their slice across batches.
	targetsCopy := make([]int, batch)
	copy(targetsCopy, targets)

	t.record(&crossEntropyOp{logits: logits, targets: targetsCopy, probs: probs, out: out})
	return out
}
