package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/hmmtag/eval"
	sent "github.com/revelaction/hmmtag/sentence"
	"github.com/revelaction/hmmtag/stat"
)

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	r := NewRenderer()
	r.Out = buf
	return r
}

func TestRenderFormats(t *testing.T) {
	res := Result{Tokens: []string{"the", "dog"}, Tags: []string{"DET", "NOUN"}}

	tests := []struct {
		format string
		want   string
	}{
		{"tagged", "the_DET dog_NOUN\n"},
		{"tags", "DET NOUN\n"},
		{"columns", "the DET\ndog NOUN\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			r := newTestRenderer(&buf)
			r.Format = tt.format
			r.Render([]Result{res})

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestRenderColorAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HasColor = true
	r.Separator = "/"
	r.NextPrefix()

	r.Sentence(Result{Id: 3, Tokens: []string{"dog"}, Tags: []string{"NOUN"}, LogProb: -1.5})

	out := buf.String()
	if !strings.Contains(out, "dog/"+Green256+"NOUN"+Off) {
		t.Errorf("expected colored tag, got %q", out)
	}
	if !strings.HasPrefix(out, "[   3     -1.500]") {
		t.Errorf("expected prefix, got %q", out)
	}
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer()
	var seen []string
	for range SupportedFormats() {
		r.NextFormat()
		seen = append(seen, r.Format)
	}

	if strings.Join(seen, ",") != "tags,columns,tagged" {
		t.Errorf("unexpected format cycle %v", seen)
	}
}

func TestReport(t *testing.T) {
	h := eval.NewHandler()
	if err := h.Aggregate([]string{"DET", "NOUN", "VERB", "NOUN"}, []string{"DET", "NOUN", "NOUN", "NOUN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	newTestRenderer(&buf).Report(h.Get())

	out := buf.String()
	if !strings.Contains(out, "Result: 75.00% correct. (3/4)") {
		t.Errorf("expected accuracy line, got %q", out)
	}
	if !strings.Contains(out, "VERB   recall   0.00%") {
		t.Errorf("expected VERB recall, got %q", out)
	}
}

func TestStat(t *testing.T) {
	h := stat.NewHandler()
	h.Aggregate(sent.Doc{Sentences: []sent.Sentence{
		{Tokens: []sent.Token{{Text: "the", Pos: "DET"}, {Text: "dog", Pos: "NOUN"}}},
	}})

	var buf bytes.Buffer
	newTestRenderer(&buf).Stat(h.Get())

	out := buf.String()
	if !strings.Contains(out, "Tokens:             2") {
		t.Errorf("expected token count, got %q", out)
	}
	if !strings.Contains(out, "DET") || !strings.Contains(out, "50.00%") {
		t.Errorf("expected POS share, got %q", out)
	}
}
