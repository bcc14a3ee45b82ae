// Package encoding maps species labels onto fixed one-hot vectors.
package encoding

import (
	"bufio"
	"os"
	"strings"

	"github.com/tlarcher/geolife-go/internal/errors"
)

// UnknownPolicy controls what happens when a label to encode is absent
// from the vocabulary.
type UnknownPolicy int

const (
	// UnknownError fails the encoding with a validation error.
	UnknownError UnknownPolicy = iota
	// UnknownDrop silently skips labels absent from the vocabulary.
	UnknownDrop
)

// Vocabulary is an ordered, duplicate-free list of labels defining the
// one-hot index mapping. Fixed for the duration of a run.
type Vocabulary struct {
	labels  []string
	indices map[string]int
}

// NewVocabulary builds a vocabulary from an ordered label list. Duplicate
// labels are rejected.
func NewVocabulary(labels []string) (*Vocabulary, error) {
	indices := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, ok := indices[label]; ok {
			return nil, errors.Newf("duplicate label %q in vocabulary", label).
				Component("encoding").
				Category(errors.CategoryValidation).
				Build()
		}
		indices[label] = i
	}
	return &Vocabulary{labels: labels, indices: indices}, nil
}

// LoadVocabulary reads a vocabulary from a file with one label per line.
// Blank lines are skipped.
func LoadVocabulary(path string) (*Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf("label file not found: %s", path).
				Component("encoding").
				Category(errors.CategoryNotFound).
				FileContext(path).
				Build()
		}
		return nil, errors.New(err).
			Component("encoding").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(err).
			Component("encoding").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}

	return NewVocabulary(labels)
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.labels)
}

// Labels returns the labels in vocabulary order.
func (v *Vocabulary) Labels() []string {
	return v.labels
}

// Index returns the one-hot index of label and whether it is present.
func (v *Vocabulary) Index(label string) (int, bool) {
	i, ok := v.indices[label]
	return i, ok
}

// OneHot encodes one or more predicted labels as a one-hot vector over the
// vocabulary. Output length equals the vocabulary size, with 1.0 at each
// predicted label's index. Labels absent from the vocabulary are handled
// according to policy.
func (v *Vocabulary) OneHot(predicted []string, policy UnknownPolicy) ([]float32, error) {
	out := make([]float32, len(v.labels))
	for _, label := range predicted {
		i, ok := v.indices[label]
		if !ok {
			if policy == UnknownDrop {
				continue
			}
			return nil, errors.Newf("label %q not in vocabulary", label).
				Component("encoding").
				Category(errors.CategoryValidation).
				Context("vocabulary_size", len(v.labels)).
				Build()
		}
		out[i] = 1.0
	}
	return out, nil
}
