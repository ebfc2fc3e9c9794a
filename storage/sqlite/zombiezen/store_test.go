package zombiezen

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/revelaction/hmmtag/hmm"
	sent "github.com/revelaction/hmmtag/sentence"
)

func TestModelStoreRoundTrip(t *testing.T) {
	pool, err := Open(filepath.Join(t.TempDir(), "hmmtag.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	m, err := hmm.NewEstimator().Train([]hmm.Pair{
		{Observation: "the", Label: "DET"},
		{Observation: "dog", Label: "NOUN"},
		{Observation: "runs", Label: "VERB"},
		{Observation: "the", Label: "DET"},
		{Observation: "cat", Label: "NOUN"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewModelStore(pool)
	if err := store.WriteModel("tiny", m); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}
	// overwriting keeps a single model
	if err := store.WriteModel("tiny", m); err != nil {
		t.Fatalf("failed to rewrite model: %v", err)
	}

	names, err := store.ModelNames()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"tiny"}) {
		t.Fatalf("unexpected names %v", names)
	}

	got, err := store.ReadModel("tiny")
	if err != nil {
		t.Fatalf("failed to read model: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("expected %+v, got %+v", m, got)
	}

	if _, err := store.ReadModel("other"); err == nil {
		t.Errorf("expected error for missing model")
	}
}

func TestDocStoreWriteRead(t *testing.T) {
	pool, err := Open(filepath.Join(t.TempDir(), "hmmtag.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	store := NewDocStore(pool)
	doc := sent.Doc{
		Title: "wsj.txt",
		Sentences: []sent.Sentence{
			{Tokens: []sent.Token{{Index: 0, Text: "the", Pos: "DET"}, {Index: 1, Text: "dog", Pos: "NOUN"}}},
			{Tokens: []sent.Token{{Index: 0, Text: "runs", Pos: "VERB"}}},
		},
	}
	if err := store.Write(doc); err != nil {
		t.Fatalf("failed to write doc: %v", err)
	}
	if err := store.Write(doc); err != nil {
		t.Fatalf("failed to rewrite doc: %v", err)
	}

	docs, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "wsj.txt" {
		t.Fatalf("unexpected docs %+v", docs)
	}

	got, err := store.Read(docs[0].Id)
	if err != nil {
		t.Fatalf("failed to read doc: %v", err)
	}
	if len(got.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got.Sentences))
	}
	if !reflect.DeepEqual(got.Sentences[0].Tokens, doc.Sentences[0].Tokens) {
		t.Errorf("unexpected tokens %+v", got.Sentences[0].Tokens)
	}
	if got.Sentences[1].Id != 1 || got.Sentences[1].DocId != docs[0].Id {
		t.Errorf("unexpected sentence numbering %+v", got.Sentences[1])
	}

	if _, err := store.Read(99); err == nil {
		t.Errorf("expected error for missing doc")
	}
}
