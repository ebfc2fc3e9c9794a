package hmm

import (
	"errors"
	"math"
	"testing"
)

func pairs(tokens ...string) []Pair {
	var ps []Pair
	for i := 0; i+1 < len(tokens); i += 2 {
		ps = append(ps, Pair{Observation: tokens[i], Label: tokens[i+1]})
	}
	return ps
}

var trainingCorpus = pairs(
	"the", "DET", "dog", "NOUN", "runs", "VERB", ".", ".",
	"a", "DET", "cat", "NOUN", "sleeps", "VERB", ".", ".",
	"the", "DET", "cat", "NOUN", "runs", "VERB", "fast", "ADV", ".", ".",
)

func TestTrainRowsSumToOne(t *testing.T) {
	m, err := NewEstimator().Train(trainingCorpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Validate(1e-9); err != nil {
		t.Fatalf("model does not validate: %v", err)
	}

	for label, s := range m.Transition.RowSums() {
		if math.Abs(s-1) > 1e-9 {
			t.Errorf("transition row %s sums to %v", label, s)
		}
	}
	for label, s := range m.Emission.RowSums() {
		if math.Abs(s-1) > 1e-9 {
			t.Errorf("emission row %s sums to %v", label, s)
		}
	}
}

func TestTrainStartIsUnigramFrequency(t *testing.T) {
	m, err := NewEstimator().Train(trainingCorpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 13 tokens, 3 of them DET
	if got, want := m.Start["DET"], 3.0/13.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected start DET %v, got %v", want, got)
	}
	if got, want := m.Start["ADV"], 1.0/13.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected start ADV %v, got %v", want, got)
	}
	if s := sum(m.Start); math.Abs(s-1) > 1e-9 {
		t.Errorf("start sums to %v", s)
	}
}

func TestTrainTransitionCounts(t *testing.T) {
	m, err := NewEstimator().Train(trainingCorpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// VERB is followed by "." twice and by ADV once
	if got := m.Transition["VERB"]["."]; math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("expected VERB->. 2/3, got %v", got)
	}
	if got := m.Emission["NOUN"]["cat"]; math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("expected NOUN emits cat 2/3, got %v", got)
	}
	if _, ok := m.Transition[sentinel]; ok {
		t.Errorf("sentinel row must not be part of the model")
	}
}

func TestTrainSentencesResetsContext(t *testing.T) {
	sentences := [][]Pair{
		pairs("the", "DET", "dog", "NOUN"),
		pairs("runs", "VERB"),
	}

	m, err := NewEstimator().TrainSentences(sentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := m.Transition["NOUN"]; ok {
		t.Errorf("NOUN ends a sentence, expected no outgoing transitions, got %v", m.Transition["NOUN"])
	}

	flat, err := NewEstimator().Train(pairs("the", "DET", "dog", "NOUN", "runs", "VERB"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat.Transition["NOUN"]["VERB"] != 1 {
		t.Errorf("expected NOUN->VERB in a single sequence, got %v", flat.Transition["NOUN"])
	}
}

func TestTrainStartInitial(t *testing.T) {
	sentences := [][]Pair{
		pairs("the", "DET", "dog", "NOUN"),
		pairs("dogs", "NOUN", "run", "VERB"),
		pairs("a", "DET", "cat", "NOUN"),
	}

	m, err := NewEstimator(WithStartMode(StartInitial)).TrainSentences(sentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := m.Start["DET"]; math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("expected start DET 2/3, got %v", got)
	}
	if _, ok := m.Start["VERB"]; ok {
		t.Errorf("VERB never starts a sentence, got %v", m.Start["VERB"])
	}
	if s := sum(m.Start); math.Abs(s-1) > 1e-9 {
		t.Errorf("start sums to %v", s)
	}
}

func TestTrainErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewEstimator().Train(nil)
		if !errors.Is(err, ErrEmptyCorpus) {
			t.Fatalf("expected ErrEmptyCorpus, got %v", err)
		}
	})

	t.Run("empty sentences", func(t *testing.T) {
		_, err := NewEstimator().TrainSentences([][]Pair{{}, {}})
		if !errors.Is(err, ErrEmptyCorpus) {
			t.Fatalf("expected ErrEmptyCorpus, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewEstimator().Train([]Pair{{"the", "DET"}, {"dog", ""}})
		var mte *MalformedTokenError
		if !errors.As(err, &mte) {
			t.Fatalf("expected MalformedTokenError, got %v", err)
		}
		if mte.Position != 1 {
			t.Errorf("expected position 1, got %d", mte.Position)
		}
	})
}

func TestParseStartMode(t *testing.T) {
	testCases := []struct {
		in   string
		mode StartMode
		ok   bool
	}{
		{"", StartUnigram, true},
		{"unigram", StartUnigram, true},
		{"initial", StartInitial, true},
		{"bogus", StartUnigram, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			mode, ok := ParseStartMode(tc.in)
			if mode != tc.mode || ok != tc.ok {
				t.Errorf("ParseStartMode(%q) = %v, %v; expected %v, %v", tc.in, mode, ok, tc.mode, tc.ok)
			}
		})
	}
}
