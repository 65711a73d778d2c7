package nn

import (
	"fmt"

	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// Accuracy returns the fraction of rows whose arg-max logit matches the
// target label. logits has shape [batch, classes], labels has length batch.
func Accuracy(logits *tensor.Tensor, labels []int) float32 {
	predictions := logits.ArgMaxRows()
	if len(predictions) != len(labels) {
		panic(fmt.Sprintf("Accuracy: %d predictions vs %d labels", len(predictions), len(labels)))
	}
	if len(labels) == 0 {
		return 0
	}
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}
	return float32(correct) / float32(len(labels))
}
