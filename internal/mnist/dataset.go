package mnist

import (
	"fmt"
	"path/filepath"
)

// Image geometry of the MNIST dataset: 28x28 grayscale, flattened to 784
// features for fully connected networks.
const (
	Rows       = 28
	Cols       = 28
	NumPixels  = Rows * Cols
	NumClasses = 10
)

// Dataset holds MNIST samples with pixels normalized to [0, 1].
type Dataset struct {
	Images [][]float32 // [num_samples][784]
	Labels []int       // [num_samples], values in [0, 9]
}

// Load reads the official IDX files from dataDir.
//
// For the training set (train=true) the expected files are
// train-images-idx3-ubyte and train-labels-idx1-ubyte; for the test set,
// t10k-images-idx3-ubyte and t10k-labels-idx1-ubyte. Gzipped variants with a
// .gz suffix are picked up automatically.
//
// maxSamples caps the number of samples loaded; 0 loads everything.
func Load(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}
	imagePath := filepath.Join(dataDir, prefix+"-images-idx3-ubyte")
	labelPath := filepath.Join(dataDir, prefix+"-labels-idx1-ubyte")

	rawImages, err := readIDXImages(imagePath)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	rawLabels, err := readIDXLabels(labelPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}

	if len(rawImages) != len(rawLabels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(rawImages), len(rawLabels))
	}

	numSamples := len(rawImages)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	ds := &Dataset{
		Images: make([][]float32, numSamples),
		Labels: make([]int, numSamples),
	}
	for i := 0; i < numSamples; i++ {
		if len(rawImages[i]) != NumPixels {
			return nil, fmt.Errorf("image %d has %d pixels, want %d", i, len(rawImages[i]), NumPixels)
		}
		label := int(rawLabels[i])
		if label < 0 || label >= NumClasses {
			return nil, fmt.Errorf("label out of range [0, %d) at sample %d: %d", NumClasses, i, label)
		}

		pixels := make([]float32, NumPixels)
		for j, p := range rawImages[i] {
			pixels[j] = float32(p) / 255.0
		}
		ds.Images[i] = pixels
		ds.Labels[i] = label
	}

	return ds, nil
}

// Synthetic generates a small linearly separable stand-in dataset for
// running the pipeline without the real MNIST files. Each class lights up a
// distinct band of rows; sample i gets label i mod 10.
func Synthetic(numSamples int) *Dataset {
	ds := &Dataset{
		Images: make([][]float32, numSamples),
		Labels: make([]int, numSamples),
	}
	for i := 0; i < numSamples; i++ {
		label := i % NumClasses
		pixels := make([]float32, NumPixels)
		startRow := label * 2
		for row := startRow; row < startRow+8 && row < Rows; row++ {
			for col := 5; col < 23; col++ {
				pixels[row*Cols+col] = 0.8
			}
		}
		ds.Images[i] = pixels
		ds.Labels[i] = label
	}
	return ds
}

// NumSamples returns the number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// Split divides the dataset into train and validation parts.
// validationRatio is the fraction reserved for validation, e.g. 0.2.
func (d *Dataset) Split(validationRatio float32) (train, validation *Dataset) {
	splitIdx := int(float32(d.NumSamples()) * (1 - validationRatio))
	train = &Dataset{Images: d.Images[:splitIdx], Labels: d.Labels[:splitIdx]}
	validation = &Dataset{Images: d.Images[splitIdx:], Labels: d.Labels[splitIdx:]}
	return train, validation
}
