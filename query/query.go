package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/render"
	"github.com/revelaction/hmmtag/tagger"
)

const (
	completionThreshold = 2

	maxSuggestions = 12

	quitCommand   = "quit"
	labelsCommand = ":labels"
)

type Handler struct {
	Tagger   *tagger.Pool
	Renderer *render.Renderer

	// words seen in training, sorted
	words []string

	// most probable label per word
	best map[string]string
}

func NewHandler(p *tagger.Pool, m *hmm.Model, r *render.Renderer) *Handler {
	h := &Handler{
		Tagger:   p,
		Renderer: r,
		best:     map[string]string{},
	}

	scores := map[string]float64{}
	for _, label := range m.Labels() {
		for word, prob := range m.Emission[label] {
			if prob > scores[word] {
				scores[word] = prob
				h.best[word] = label
			}
		}
	}

	for word := range h.best {
		h.words = append(h.words, word)
	}
	sort.Strings(h.words)

	return h
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, :labels, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("hmmtag query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Println("Format set to: " + h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Println("Prefix set to " + fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		in = strings.TrimSpace(in)
		if in == quitCommand {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)

		if in == labelsCommand {
			fmt.Fprintln(h.Renderer.Out, strings.Join(h.Tagger.Labels(), " "))
			continue
		}

		results, err := h.Tag(context.Background(), in)
		if err != nil {
			fmt.Fprintf(h.Renderer.Out, "Error tagging: %v\n", err)
			continue
		}

		h.Renderer.Render(results)
	}
}

// Tag splits the input line into sentences at terminal punctuation and
// decodes each of them.
func (h *Handler) Tag(ctx context.Context, in string) ([]render.Result, error) {
	sentences := corpus.Split(corpus.Tokenize(in), corpus.IsTerminal)

	paths, err := h.Tagger.TagAll(ctx, sentences, nil)
	if err != nil {
		return nil, err
	}

	results := make([]render.Result, len(paths))
	for i, p := range paths {
		results[i] = render.Result{Id: i, Tokens: sentences[i], Tags: p.Labels, LogProb: p.LogProb}
	}
	return results, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}

	word := in.GetWordBeforeCursor()
	if len(word) < completionThreshold {
		return s
	}

	// first word at or after the prefix in sorted order
	i := sort.SearchStrings(h.words, word)
	for ; i < len(h.words) && len(s) < maxSuggestions; i++ {
		if !strings.HasPrefix(h.words[i], word) {
			break
		}
		s = append(s, prompt.Suggest{Text: h.words[i], Description: h.best[h.words[i]]})
	}

	return s
}
