// Package eval compares predicted tags against gold tags.
package eval

import (
	"errors"
	"sort"
)

// ErrLengthMismatch is returned when gold and predicted sequences differ in
// length.
var ErrLengthMismatch = errors.New("eval: gold and predicted sequences differ in length")

// Confusion maps a gold label to the count of each predicted label.
type Confusion map[string]map[string]int

type Stats struct {
	Total   int
	Correct int

	Confusion Confusion

	// Known and unknown word counts, only filled by AggregateWords.
	KnownTotal     int
	KnownCorrect   int
	UnknownTotal   int
	UnknownCorrect int
}

// Accuracy is the ratio of correct predictions, 0 when nothing was seen.
func (s Stats) Accuracy() float64 {
	return ratio(s.Correct, s.Total)
}

func (s Stats) KnownAccuracy() float64 {
	return ratio(s.KnownCorrect, s.KnownTotal)
}

func (s Stats) UnknownAccuracy() float64 {
	return ratio(s.UnknownCorrect, s.UnknownTotal)
}

// Recall is the fraction of tokens with gold label that were predicted as
// label.
func (s Stats) Recall(label string) float64 {
	row := s.Confusion[label]
	total := 0
	for _, n := range row {
		total += n
	}
	return ratio(row[label], total)
}

// Precision is the fraction of tokens predicted as label whose gold label is
// label.
func (s Stats) Precision(label string) float64 {
	predicted := 0
	for _, row := range s.Confusion {
		predicted += row[label]
	}
	return ratio(s.Confusion[label][label], predicted)
}

// Labels returns every gold and predicted label, sorted.
func (s Stats) Labels() []string {
	seen := map[string]bool{}
	for gold, row := range s.Confusion {
		seen[gold] = true
		for pred := range row {
			seen[pred] = true
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

type Handler struct {
	stats Stats
}

func NewHandler() *Handler {
	return &Handler{
		stats: Stats{Confusion: Confusion{}},
	}
}

func (h *Handler) Get() Stats {
	return h.stats
}

// Aggregate adds a pair of parallel label sequences to the statistics.
func (h *Handler) Aggregate(gold, predicted []string) error {
	if len(gold) != len(predicted) {
		return ErrLengthMismatch
	}

	for i := range gold {
		h.add(gold[i], predicted[i])
	}
	return nil
}

// AggregateWords is Aggregate that also splits accuracy by whether each word
// is in vocab.
func (h *Handler) AggregateWords(words, gold, predicted []string, vocab map[string]bool) error {
	if len(gold) != len(predicted) || len(words) != len(gold) {
		return ErrLengthMismatch
	}

	for i := range gold {
		ok := h.add(gold[i], predicted[i])
		if vocab[words[i]] {
			h.stats.KnownTotal++
			if ok {
				h.stats.KnownCorrect++
			}
			continue
		}

		h.stats.UnknownTotal++
		if ok {
			h.stats.UnknownCorrect++
		}
	}
	return nil
}

func (h *Handler) add(gold, predicted string) bool {
	row, ok := h.stats.Confusion[gold]
	if !ok {
		row = map[string]int{}
		h.stats.Confusion[gold] = row
	}
	row[predicted]++

	h.stats.Total++
	if gold == predicted {
		h.stats.Correct++
		return true
	}
	return false
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
