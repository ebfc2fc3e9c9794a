package stat

import (
	"sort"

	sent "github.com/revelaction/hmmtag/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// number of tokens per POS
	Pos map[string]int

	// distinct words
	NumTypes int

	types map[string]bool
}

// PosSorted returns the POS names ordered by decreasing count, then name.
func (s Stats) PosSorted() []string {
	names := make([]string, 0, len(s.Pos))
	for p := range s.Pos {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Pos[names[i]] != s.Pos[names[j]] {
			return s.Pos[names[i]] > s.Pos[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		Pos:                  map[string]int{},
		types:                map[string]bool{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumSentences += len(doc.Sentences)
	//
	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, token := range sentence.Tokens {
			if token.Pos != "" {
				h.stats.Pos[token.Pos]++
			}
			h.stats.types[token.Text] = true
		}
	}

	h.stats.NumTypes = len(h.stats.types)

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
