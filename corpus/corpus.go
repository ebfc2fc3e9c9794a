// Package corpus reads tagged text in the `word_TAG` format.
//
// Tokens are separated by whitespace. Each token carries the word and its
// part of speech joined by a separator; the token is split at the last
// separator so that words may contain it.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/hmmtag/hmm"
	sent "github.com/revelaction/hmmtag/sentence"
)

const (
	DefaultSeparator = "_"

	maxTokenSize = 1024 * 1024
)

// Options controls how a corpus is split into tokens and sentences.
type Options struct {
	// Separator between the word and the tag of a token.
	Separator string

	// Boundary is the tag that closes a sentence (f.ex. "."). When empty the
	// whole input is one sentence.
	Boundary string
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

// ParseToken splits a tagged token into its word and tag.
func ParseToken(token, separator string, position int) (sent.Token, error) {
	idx := strings.LastIndex(token, separator)
	if idx <= 0 || idx+len(separator) >= len(token) {
		return sent.Token{}, &hmm.MalformedTokenError{Token: token, Position: position}
	}

	return sent.Token{
		Text: token[:idx],
		Pos:  token[idx+len(separator):],
	}, nil
}

// Read parses a tagged corpus. Token order is preserved.
func Read(r io.Reader, opts Options) ([]sent.Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	var sentences []sent.Sentence
	current := sent.Sentence{}

	closeSentence := func() {
		if len(current.Tokens) == 0 {
			return
		}
		current.Id = len(sentences)
		sentences = append(sentences, current)
		current = sent.Sentence{}
	}

	position := 0
	for scanner.Scan() {
		token, err := ParseToken(scanner.Text(), opts.separator(), position)
		if err != nil {
			return nil, err
		}
		position++

		token.Index = len(current.Tokens)
		current.Tokens = append(current.Tokens, token)

		if opts.Boundary != "" && token.Pos == opts.Boundary {
			closeSentence()
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus read error: %w", err)
	}

	closeSentence()
	return sentences, nil
}

// Pairs converts sentences into training pairs.
func Pairs(sentences []sent.Sentence) [][]hmm.Pair {
	all := make([][]hmm.Pair, len(sentences))
	for i, s := range sentences {
		pairs := make([]hmm.Pair, len(s.Tokens))
		for j, t := range s.Tokens {
			pairs[j] = hmm.Pair{Observation: t.Text, Label: t.Pos}
		}
		all[i] = pairs
	}
	return all
}

// Observations returns the words of each sentence.
func Observations(sentences []sent.Sentence) [][]string {
	obs := make([][]string, len(sentences))
	for i, s := range sentences {
		obs[i] = s.Words()
	}
	return obs
}

// Gold returns the tags of each sentence.
func Gold(sentences []sent.Sentence) [][]string {
	gold := make([][]string, len(sentences))
	for i, s := range sentences {
		gold[i] = s.Tags()
	}
	return gold
}

// Flatten joins sentences into one sequence, renumbering token indexes.
func Flatten(sentences []sent.Sentence) sent.Sentence {
	var s sent.Sentence
	for _, sentence := range sentences {
		for _, t := range sentence.Tokens {
			t.Index = len(s.Tokens)
			s.Tokens = append(s.Tokens, t)
		}
	}
	return s
}

// Labels returns the tags of all sentences in first seen order.
func Labels(sentences []sent.Sentence) []string {
	seen := map[string]bool{}
	var labels []string
	for _, s := range sentences {
		for _, t := range s.Tokens {
			if t.Pos == "" || seen[t.Pos] {
				continue
			}
			seen[t.Pos] = true
			labels = append(labels, t.Pos)
		}
	}
	return labels
}

// Tokenize splits untagged text into words.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Split cuts words into sentences after every word for which isEnd returns
// true. A nil isEnd returns words as a single sentence.
func Split(words []string, isEnd func(string) bool) [][]string {
	if len(words) == 0 {
		return nil
	}
	if isEnd == nil {
		return [][]string{words}
	}

	var out [][]string
	start := 0
	for i, w := range words {
		if isEnd(w) {
			out = append(out, words[start:i+1])
			start = i + 1
		}
	}
	if start < len(words) {
		out = append(out, words[start:])
	}
	return out
}

// IsTerminal reports whether a word ends a sentence in untagged text.
func IsTerminal(word string) bool {
	return len(word) == 1 && strings.IndexAny(word, ".?!") == 0
}

// Untagged builds a sentence of untagged tokens from words.
func Untagged(words []string) sent.Sentence {
	s := sent.Sentence{Tokens: make([]sent.Token, len(words))}
	for i, w := range words {
		s.Tokens[i] = sent.Token{Index: i, Text: w}
	}
	return s
}
