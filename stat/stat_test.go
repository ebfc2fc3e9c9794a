package stat

import (
	"reflect"
	"testing"

	sent "github.com/revelaction/hmmtag/sentence"
)

func tokens(pairs ...string) []sent.Token {
	var ts []sent.Token
	for i := 0; i+1 < len(pairs); i += 2 {
		ts = append(ts, sent.Token{Index: len(ts), Text: pairs[i], Pos: pairs[i+1]})
	}
	return ts
}

func TestAggregate(t *testing.T) {
	doc := sent.Doc{Sentences: []sent.Sentence{
		{Tokens: tokens("the", "DET", "dog", "NOUN", "runs", "VERB", ".", ".")},
		{Tokens: tokens("the", "DET", "cat", "NOUN")},
	}}

	hdl := NewHandler()
	hdl.Aggregate(doc)
	stats := hdl.Get()

	if stats.NumSentences != 2 || stats.NumTokens != 6 {
		t.Fatalf("expected 2 sentences and 6 tokens, got %d and %d", stats.NumSentences, stats.NumTokens)
	}
	if stats.TokensPerSentenceMean != 3 {
		t.Errorf("expected mean 3, got %d", stats.TokensPerSentenceMean)
	}
	if stats.NumTypes != 5 {
		t.Errorf("expected 5 types, got %d", stats.NumTypes)
	}
	if got := stats.PosSorted(); !reflect.DeepEqual(got, []string{"DET", "NOUN", ".", "VERB"}) {
		t.Errorf("unexpected POS order %v", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	hdl := NewHandler()
	hdl.Aggregate(sent.Doc{})

	if got := hdl.Get(); got.NumSentences != 0 || got.TokensPerSentenceMean != 0 {
		t.Errorf("unexpected stats %+v", got)
	}
}
