package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/hmmtag/eval"
	"github.com/revelaction/hmmtag/stat"
)

const (
	DefaultFormat    = "tagged"
	DefaultSeparator = "_"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// Result is a decoded sentence.
type Result struct {
	Id      int      `json:"id"`
	Tokens  []string `json:"tokens"`
	Tags    []string `json:"tags"`
	LogProb float64  `json:"log_prob"`
}

// ResultRenderer writes decoded sentences.
type ResultRenderer interface {
	Render(results []Result)
}

func SupportedFormats() []string {
	return []string{"tagged", "tags", "columns"}
}

type Renderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines the format of the sentence
	//
	// tagged: word_TAG word_TAG
	// tags: only the tags
	// columns: one word and its tag per line
	Format string

	// Separator joins a word and its tag in the tagged format
	Separator string
}

var _ ResultRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{
		Out:       os.Stdout,
		Format:    DefaultFormat,
		Separator: DefaultSeparator,
	}
}

// Render prints every result in the current format.
func (r *Renderer) Render(results []Result) {
	for _, res := range results {
		r.Sentence(res)
	}
}

func (r *Renderer) Sentence(res Result) {
	prefix := r.prefix(res)
	if r.Format == "columns" {
		if prefix != "" {
			fmt.Fprintln(r.Out, prefix)
		}
		fmt.Fprint(r.Out, r.columns(res.Tokens, res.Tags))
		fmt.Fprintln(r.Out)
		return
	}

	fmt.Fprintf(r.Out, "%s%s\n", prefix, r.SentenceString(res.Tokens, res.Tags))
}

// SentenceString renders words and tags on one line.
func (r *Renderer) SentenceString(words, tags []string) string {
	if r.Format == "tags" {
		colored := make([]string, len(tags))
		for i, tag := range tags {
			colored[i] = r.tag(tag)
		}
		return strings.Join(colored, " ")
	}

	parts := make([]string, len(words))
	for i, w := range words {
		tag := ""
		if i < len(tags) {
			tag = tags[i]
		}
		parts[i] = w + r.separator() + r.tag(tag)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) columns(words, tags []string) string {
	width := 0
	for _, w := range words {
		if l := len([]rune(w)); l > width {
			width = l
		}
	}

	var str strings.Builder
	for i, w := range words {
		tag := ""
		if i < len(tags) {
			tag = tags[i]
		}
		str.WriteString(fmt.Sprintf("%-*s %s\n", width, w, r.tag(tag)))
	}
	return str.String()
}

func (r *Renderer) separator() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

func (r *Renderer) tag(tag string) string {
	if !r.HasColor {
		return tag
	}
	return Green256 + tag + Off
}

func (r *Renderer) prefix(res Result) string {
	if !r.HasPrefix {
		return ""
	}
	return fmt.Sprintf("[%4d %10.3f] ✍  ", res.Id, res.LogProb)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			return
		}
	}

	r.Format = DefaultFormat
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}

// Report prints the confusion matrix, per label recall and precision and the
// overall accuracy.
func (r *Renderer) Report(s eval.Stats) {
	labels := s.Labels()

	width := 6
	for _, l := range labels {
		if len(l)+1 > width {
			width = len(l) + 1
		}
	}

	// header: predicted labels
	fmt.Fprintf(r.Out, "%-*s", width, "")
	for _, pred := range labels {
		fmt.Fprintf(r.Out, "%*s", width, pred)
	}
	fmt.Fprintln(r.Out)

	for _, gold := range labels {
		fmt.Fprintf(r.Out, "%-*s", width, gold)
		for _, pred := range labels {
			n := s.Confusion[gold][pred]
			cell := fmt.Sprintf("%*d", width, n)
			if r.HasColor && n > 0 {
				if gold == pred {
					cell = Green + cell + Off
				} else {
					cell = Red + cell + Off
				}
			}
			fmt.Fprint(r.Out, cell)
		}
		fmt.Fprintln(r.Out)
	}
	fmt.Fprintln(r.Out)

	for _, l := range labels {
		fmt.Fprintf(r.Out, "%-*s recall %6.2f%%  precision %6.2f%%\n", width, l, 100*s.Recall(l), 100*s.Precision(l))
	}

	if s.KnownTotal+s.UnknownTotal > 0 {
		fmt.Fprintf(r.Out, "\nKnown words:   %6.2f%% (%d)\n", 100*s.KnownAccuracy(), s.KnownTotal)
		fmt.Fprintf(r.Out, "Unknown words: %6.2f%% (%d)\n", 100*s.UnknownAccuracy(), s.UnknownTotal)
	}

	fmt.Fprintf(r.Out, "\nResult: %s%.2f%%%s correct. (%d/%d)\n", r.color(Yellow256), 100*s.Accuracy(), r.color(Off), s.Correct, s.Total)
}

// Stat prints corpus statistics.
func (r *Renderer) Stat(s stat.Stats) {
	fmt.Fprintf(r.Out, "Sentences:          %d\n", s.NumSentences)
	fmt.Fprintf(r.Out, "Tokens:             %d\n", s.NumTokens)
	fmt.Fprintf(r.Out, "Word types:         %d\n", s.NumTypes)
	fmt.Fprintf(r.Out, "Tokens per sentence %d\n", s.TokensPerSentenceMean)
	fmt.Fprintln(r.Out)

	for _, pos := range s.PosSorted() {
		share := 0.0
		if s.NumTokens > 0 {
			share = 100 * float64(s.Pos[pos]) / float64(s.NumTokens)
		}
		fmt.Fprintf(r.Out, "%s%-8s%s %8d %6.2f%%\n", r.color(Grey256), pos, r.color(Off), s.Pos[pos], share)
	}
}

func (r *Renderer) color(c string) string {
	if !r.HasColor {
		return ""
	}
	return c
}
