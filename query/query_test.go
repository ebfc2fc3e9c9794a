package query

import (
	"context"
	"reflect"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/render"
	"github.com/revelaction/hmmtag/tagger"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	var pairs []hmm.Pair
	for _, s := range [][2]string{
		{"the", "DET"}, {"dog", "NOUN"}, {"runs", "VERB"}, {".", "."},
		{"a", "DET"}, {"dove", "NOUN"}, {"does", "VERB"}, {"sleep", "VERB"}, {".", "."},
	} {
		pairs = append(pairs, hmm.Pair{Observation: s[0], Label: s[1]})
	}

	m, err := hmm.NewEstimator().Train(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := hmm.NewDecoder(hmm.DefaultFloor).Compile(m.Labels(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewHandler(tagger.New(c, 2, zap.NewNop()), m, render.NewRenderer())
}

func TestTagSplitsSentences(t *testing.T) {
	h := newTestHandler(t)

	results, err := h.Tag(context.Background(), "the dog runs . a dove sleep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(results))
	}

	if !reflect.DeepEqual(results[0].Tags, []string{"DET", "NOUN", "VERB", "."}) {
		t.Errorf("unexpected tags %v", results[0].Tags)
	}
	if results[1].Id != 1 || !reflect.DeepEqual(results[1].Tokens, []string{"a", "dove", "sleep"}) {
		t.Errorf("unexpected second sentence %+v", results[1])
	}
}

func TestCompleter(t *testing.T) {
	h := newTestHandler(t)

	complete := func(text string) []prompt.Suggest {
		b := prompt.NewBuffer()
		b.InsertText(text, false, true)
		return h.completer(*b.Document())
	}

	got := complete("the do")
	want := []prompt.Suggest{
		{Text: "does", Description: "VERB"},
		{Text: "dog", Description: "NOUN"},
		{Text: "dove", Description: "NOUN"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := complete("d"); len(got) != 0 {
		t.Errorf("expected no suggestions below threshold, got %v", got)
	}

	if got := complete("zz"); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}
