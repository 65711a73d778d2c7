// Package autodiff implements reverse-mode automatic differentiation.
//
// A Tape records operations during the forward pass; Backward walks the tape
// in reverse and applies the chain rule per operation, accumulating gradients
// where a tensor feeds more than one operation.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	tape.StartRecording()
//	y := tape.MatMul(x, w)
//	loss := tape.Mean(y)
//	grads := tape.Backward(loss)
//	gw := grads[w] // dloss/dw
package autodiff

import "github.com/minigrad-ml/minigrad/internal/tensor"

// Operation is a differentiable operation in the computation graph.
// Each operation keeps its inputs and output from the forward pass and
// computes input gradients during the backward pass.
type Operation interface {
	// Inputs returns the tensors this operation consumed.
	Inputs() []*tensor.Tensor

	// Output returns the tensor this operation produced.
	Output() *tensor.Tensor

	// Backward computes gradients for the inputs given the output gradient.
	// The returned slice corresponds positionally to Inputs().
	//
	// Returned tensors must be freshly allocated: the tape accumulates into
	// them in place, so aliasing outputGrad would corrupt other branches.
	Backward(outputGrad *tensor.Tensor) []*tensor.Tensor
}

// Tape records operations during the forward pass and computes gradients
// during the backward pass.
type Tape struct {
	operations []Operation
	recording  bool
}

// NewTape creates a new gradient tape. Recording starts disabled.
func NewTape() *Tape {
	return &Tape{operations: make([]Operation, 0, 64)}
}

// StartRecording enables operation recording.
func (t *Tape) StartRecording() { t.recording = true }

// StopRecording disables operation recording.
func (t *Tape) StopRecording() { t.recording = false }

// IsRecording reports whether the tape is currently recording.
func (t *Tape) IsRecording() bool { return t.recording }

// Clear drops all recorded operations. Recording state is preserved.
// Call between training iterations to keep the tape from growing.
func (t *Tape) Clear() {
	t.operations = t.operations[:0]
}

// Len returns the number of recorded operations.
func (t *Tape) Len() int { return len(t.operations) }

func (t *Tape) record(op Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Backward computes gradients of output with respect to every tensor that
// participated in producing it.
//
// The output gradient is seeded with ones (the usual case: output is a
// scalar loss). Operations are replayed in reverse; gradients for tensors
// used multiple times are summed.
func (t *Tape) Backward(output *tensor.Tensor) map[*tensor.Tensor]*tensor.Tensor {
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient operations must not themselves be recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads[output] = tensor.Ones(output.Shape())

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad := grads[op.Output()]
		if outGrad == nil {
			// No gradient flows through this operation.
			continue
		}
		inputGrads := op.Backward(outGrad)
		inputs := op.Inputs()
		for j, in := range inputs {
			if inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[in]; ok {
				existing.AddInPlace(inputGrads[j])
			} else {
				grads[in] = inputGrads[j]
			}
		}
	}

	return grads
}
