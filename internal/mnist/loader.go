package mnist

import (
	"fmt"
	"math/rand"

	"github.com/minigrad-ml/minigrad/internal/tensor"
)

// Batch is one mini-batch of training data. The image tensor has shape
// [size, 784]; labels are the matching class indices. A batch lives for one
// forward/backward step and is then replaced by the next one.
type Batch struct {
	Images *tensor.Tensor
	Labels []int
	Size   int
}

// Loader serves a dataset as mini-batches, reshuffling sample order with a
// seeded Fisher-Yates shuffle at the start of every epoch.
type Loader struct {
	dataset   *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
}

// NewLoader creates a loader over the dataset.
//
// With shuffle enabled, sample order is re-randomized every epoch using the
// given seed, so runs are reproducible. The final batch of an epoch may be
// smaller than batchSize when the dataset does not divide evenly.
func NewLoader(dataset *Dataset, batchSize int, shuffle bool, seed int64) (*Loader, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if dataset.NumSamples() == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	return &Loader{
		dataset:   dataset,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// NumBatches returns the number of batches per epoch.
func (l *Loader) NumBatches() int {
	return (l.dataset.NumSamples() + l.batchSize - 1) / l.batchSize
}

// Epoch materializes one epoch of batches, shuffling first if enabled.
func (l *Loader) Epoch() []*Batch {
	n := l.dataset.NumSamples()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if l.shuffle {
		l.rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	batches := make([]*Batch, 0, l.NumBatches())
	for start := 0; start < n; start += l.batchSize {
		end := start + l.batchSize
		if end > n {
			end = n
		}
		size := end - start

		images := tensor.New(tensor.Shape{size, NumPixels})
		labels := make([]int, size)
		data := images.Data()
		for i := start; i < end; i++ {
			idx := order[i]
			copy(data[(i-start)*NumPixels:(i-start+1)*NumPixels], l.dataset.Images[idx])
			labels[i-start] = l.dataset.Labels[idx]
		}

		batches = append(batches, &Batch{Images: images, Labels: labels, Size: size})
	}
	return batches
}
