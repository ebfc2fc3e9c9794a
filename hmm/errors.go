package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus is returned when training on a corpus with no tokens.
	ErrEmptyCorpus = errors.New("hmm: empty training corpus")

	// ErrEmptyAlphabet is returned when decoding with no labels.
	ErrEmptyAlphabet = errors.New("hmm: empty label alphabet")

	// ErrEmptyObservations is returned when decoding an empty sequence.
	ErrEmptyObservations = errors.New("hmm: empty observation sequence")

	// ErrInvalidFloor is returned for a smoothing floor outside (0, 1).
	ErrInvalidFloor = errors.New("hmm: smoothing floor must be in (0, 1)")
)

// MalformedTokenError reports a training token that cannot be split into an
// observation and a label.
type MalformedTokenError struct {
	Token string

	// Position of the token in the corpus, starting at 0.
	Position int
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("hmm: malformed token %q at position %d", e.Token, e.Position)
}
