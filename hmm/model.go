package hmm

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Pair is a single training token: a word and its part of speech.
type Pair struct {
	Observation string
	Label       string
}

// Table maps a row label to a probability distribution over keys. For
// transitions the keys are labels, for emissions they are observations.
type Table map[string]map[string]float64

// RowSums returns the sum of every row of the table.
func (t Table) RowSums() map[string]float64 {
	sums := make(map[string]float64, len(t))
	for label, row := range t {
		sums[label] = sum(row)
	}
	return sums
}

// Model holds the probability tables estimated from a tagged corpus.
//
// A Model is immutable once returned by the Estimator; the decoder only reads
// from it, so a single Model can be shared by concurrent decoders.
type Model struct {
	Start      map[string]float64 `json:"start"`
	Transition Table              `json:"transition"`
	Emission   Table              `json:"emission"`
}

// Labels returns the label alphabet of the model sorted ascending. This
// order is the one the decoder uses to break ties.
func (m *Model) Labels() []string {
	seen := make(map[string]bool, len(m.Start))
	for label := range m.Start {
		seen[label] = true
	}
	for label := range m.Emission {
		seen[label] = true
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Vocabulary returns the set of observations emitted by any label.
func (m *Model) Vocabulary() map[string]bool {
	vocab := map[string]bool{}
	for _, row := range m.Emission {
		for obs := range row {
			vocab[obs] = true
		}
	}
	return vocab
}

// Validate checks that the start table and every transition and emission
// row sum to 1 within tolerance.
func (m *Model) Validate(tolerance float64) error {
	if len(m.Start) == 0 {
		return fmt.Errorf("model has no start probabilities")
	}

	if s := sum(m.Start); math.Abs(s-1) > tolerance {
		return fmt.Errorf("start probabilities sum to %g", s)
	}

	for name, table := range map[string]Table{"transition": m.Transition, "emission": m.Emission} {
		for label, s := range table.RowSums() {
			if math.Abs(s-1) > tolerance {
				return fmt.Errorf("%s row %q sums to %g", name, label, s)
			}
		}
	}

	return nil
}

// sum adds the values of a distribution in key order so that the result
// does not depend on map iteration.
func sum(row map[string]float64) float64 {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = row[k]
	}
	return floats.Sum(values)
}
