package hmm

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func feverModel() *Model {
	return &Model{
		Start: map[string]float64{"Healthy": 0.6, "Fever": 0.4},
		Transition: Table{
			"Healthy": {"Healthy": 0.7, "Fever": 0.3},
			"Fever":   {"Healthy": 0.4, "Fever": 0.6},
		},
		Emission: Table{
			"Healthy": {"normal": 0.5, "cold": 0.4, "dizzy": 0.1},
			"Fever":   {"normal": 0.1, "cold": 0.3, "dizzy": 0.6},
		},
	}
}

func TestDecodeFever(t *testing.T) {
	d := NewDecoder(DefaultFloor)
	obs := []string{"normal", "cold", "dizzy"}

	path, err := d.Decode(context.Background(), obs, []string{"Healthy", "Fever"}, feverModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Healthy", "Healthy", "Fever"}
	if !reflect.DeepEqual(path.Labels, want) {
		t.Fatalf("expected %v, got %v", want, path.Labels)
	}

	if p := math.Exp(path.LogProb); math.Abs(p-0.01512) > 1e-9 {
		t.Errorf("expected probability 0.01512, got %v", p)
	}
}

func TestDecodeTrainedSingleWord(t *testing.T) {
	m, err := NewEstimator().Train(pairs("the", "DET", "dog", "NOUN", "runs", "VERB"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := NewDecoder(DefaultFloor).Decode(context.Background(), []string{"dog"}, m.Labels(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(path.Labels, []string{"NOUN"}) {
		t.Fatalf("expected [NOUN], got %v", path.Labels)
	}
}

func TestDecodeSingleObservationIgnoresTransitions(t *testing.T) {
	m := feverModel()
	d := NewDecoder(DefaultFloor)
	labels := []string{"Healthy", "Fever"}

	want, err := d.Decode(context.Background(), []string{"dizzy"}, labels, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Transition = Table{"Healthy": {"Fever": 1}, "Fever": {"Fever": 1}}
	got, err := d.Decode(context.Background(), []string{"dizzy"}, labels, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(want, got) {
		t.Errorf("transition table changed a single step decode: %v vs %v", want, got)
	}
	if len(got.Labels) != 1 {
		t.Errorf("expected 1 label, got %d", len(got.Labels))
	}
}

func TestDecodeLengthMatchesObservations(t *testing.T) {
	m, err := NewEstimator().Train(trainingCorpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := NewDecoder(DefaultFloor).Compile(m.Labels(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sequences := [][]string{
		{"the"},
		{"the", "dog"},
		{"a", "zebra", "sleeps", "."},
		{"unseen", "words", "only", "here", "and", "there"},
	}

	for _, obs := range sequences {
		path, err := c.Decode(context.Background(), obs)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", obs, err)
		}
		if len(path.Labels) != len(obs) {
			t.Errorf("expected %d labels for %v, got %d", len(obs), obs, len(path.Labels))
		}
	}
}

func TestDecodeOutOfVocabulary(t *testing.T) {
	m, err := NewEstimator().Train(trainingCorpus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := NewDecoder(DefaultFloor).Decode(context.Background(), []string{"the", "zebra", "runs"}, m.Labels(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"DET", "NOUN", "VERB"}
	if !reflect.DeepEqual(path.Labels, want) {
		t.Errorf("expected %v, got %v", want, path.Labels)
	}
}

func TestDecodeDeterministic(t *testing.T) {
	// every label scores the same: ties must always resolve the same way
	m := &Model{
		Start:      map[string]float64{"A": 0.5, "B": 0.5},
		Transition: Table{"A": {"A": 0.5, "B": 0.5}, "B": {"A": 0.5, "B": 0.5}},
		Emission:   Table{"A": {"x": 1}, "B": {"x": 1}},
	}
	obs := []string{"x", "x", "x"}
	d := NewDecoder(DefaultFloor)

	first, err := d.Decode(context.Background(), obs, m.Labels(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Labels, []string{"A", "A", "A"}) {
		t.Errorf("expected ties to resolve to the first label, got %v", first.Labels)
	}

	for i := 0; i < 20; i++ {
		again, err := d.Decode(context.Background(), obs, m.Labels(), m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("decode %d differs: %v vs %v", i, first, again)
		}
	}

	reversed, err := d.Decode(context.Background(), obs, []string{"B", "A"}, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(reversed.Labels, []string{"B", "B", "B"}) {
		t.Errorf("expected alphabet order to drive ties, got %v", reversed.Labels)
	}
}

func TestDecodeFloorMonotonic(t *testing.T) {
	m := feverModel()
	obs := []string{"normal", "sneeze", "dizzy"}
	labels := []string{"Healthy", "Fever"}

	prev := math.Inf(-1)
	for _, floor := range []float64{1e-9, 1e-6, 1e-3, 1e-1} {
		path, err := NewDecoder(floor).Decode(context.Background(), obs, labels, m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path.LogProb < prev {
			t.Errorf("floor %g decreased log probability: %v < %v", floor, path.LogProb, prev)
		}
		prev = path.LogProb
	}
}

func TestDecodeErrors(t *testing.T) {
	d := NewDecoder(DefaultFloor)

	_, err := d.Decode(context.Background(), []string{"cold"}, nil, feverModel())
	if !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}

	_, err = d.Decode(context.Background(), nil, []string{"Healthy"}, feverModel())
	if !errors.Is(err, ErrEmptyObservations) {
		t.Errorf("expected ErrEmptyObservations, got %v", err)
	}

	_, err = NewDecoder(0).Decode(context.Background(), []string{"cold"}, []string{"Healthy"}, feverModel())
	if !errors.Is(err, ErrInvalidFloor) {
		t.Errorf("expected ErrInvalidFloor, got %v", err)
	}
}

func TestDecodeUnknownLabel(t *testing.T) {
	// a label without any table entry still decodes through the floor
	path, err := NewDecoder(DefaultFloor).Decode(context.Background(), []string{"cold", "cold"}, []string{"Fever", "Healthy", "Unknown"}, feverModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %v", path.Labels)
	}
	for _, l := range path.Labels {
		if l == "Unknown" {
			t.Errorf("unexpected Unknown label in %v", path.Labels)
		}
	}
}

func TestDecodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder(DefaultFloor).Decode(ctx, []string{"normal", "cold"}, []string{"Healthy", "Fever"}, feverModel())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
