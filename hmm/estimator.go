package hmm

import (
	"gonum.org/v1/gonum/floats"
)

// StartMode selects how start probabilities are estimated.
type StartMode int

const (
	// StartUnigram uses the corpus-wide label frequency as the prior of the
	// first hidden state.
	StartUnigram StartMode = iota

	// StartInitial uses the frequency of each label as the first label of a
	// sentence.
	StartInitial
)

func (s StartMode) String() string {
	switch s {
	case StartInitial:
		return "initial"
	default:
		return "unigram"
	}
}

// ParseStartMode converts "unigram" or "initial" into a StartMode.
func ParseStartMode(s string) (StartMode, bool) {
	switch s {
	case "", "unigram":
		return StartUnigram, true
	case "initial":
		return StartInitial, true
	}
	return StartUnigram, false
}

// sentinel is the context label before the first token of a sentence. Real
// labels are never empty, so it cannot collide with one.
const sentinel = ""

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithStartMode sets the start probability estimator.
func WithStartMode(mode StartMode) EstimatorOption {
	return func(e *Estimator) {
		e.mode = mode
	}
}

// Estimator builds a first order Model from tagged tokens.
type Estimator struct {
	mode StartMode
}

func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{mode: StartUnigram}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Train estimates a model treating pairs as a single sequence.
func (e *Estimator) Train(pairs []Pair) (*Model, error) {
	return e.TrainSentences([][]Pair{pairs})
}

// TrainSentences estimates a model from independent sequences. The label
// context is reset at the start of every sequence.
func (e *Estimator) TrainSentences(sentences [][]Pair) (*Model, error) {
	transition := map[string]map[string]int{}
	emission := map[string]map[string]int{}
	labelCount := map[string]int{}
	initial := map[string]int{}

	tokens, position := 0, 0
	numSentences := 0
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		numSentences++

		previous := sentinel
		for _, p := range sentence {
			if p.Observation == "" || p.Label == "" {
				return nil, &MalformedTokenError{Token: p.Observation + "_" + p.Label, Position: position}
			}

			increment(transition, previous, p.Label)
			increment(emission, p.Label, p.Observation)
			labelCount[p.Label]++

			if previous == sentinel {
				initial[p.Label]++
			}

			previous = p.Label
			tokens++
			position++
		}
	}

	if tokens == 0 {
		return nil, ErrEmptyCorpus
	}

	m := &Model{
		Start:      make(map[string]float64, len(labelCount)),
		Transition: normalize(transition),
		Emission:   normalize(emission),
	}

	switch e.mode {
	case StartInitial:
		for label, n := range initial {
			m.Start[label] = float64(n) / float64(numSentences)
		}
	default:
		for label, n := range labelCount {
			m.Start[label] = float64(n) / float64(tokens)
		}
	}

	delete(m.Transition, sentinel)

	return m, nil
}

func increment(counts map[string]map[string]int, row, key string) {
	r, ok := counts[row]
	if !ok {
		r = map[string]int{}
		counts[row] = r
	}
	r[key]++
}

// normalize divides every row by its total.
func normalize(counts map[string]map[string]int) Table {
	t := make(Table, len(counts))
	for label, row := range counts {
		values := make([]float64, 0, len(row))
		for _, n := range row {
			values = append(values, float64(n))
		}
		total := floats.Sum(values)

		probs := make(map[string]float64, len(row))
		for key, n := range row {
			probs[key] = float64(n) / total
		}
		t[label] = probs
	}
	return t
}
