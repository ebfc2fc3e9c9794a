package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/eval"
	"github.com/revelaction/hmmtag/render"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type EvalOptions struct {
	// TestLabels adds the gold labels of the test corpus to the alphabet
	TestLabels bool
}

func evalCmd(e *env) *cli.Command {
	flags := append(modelFlags(), decodeFlags()...)
	flags = append(flags, corpusFlags("tagged test corpus: a file, a directory or a SQLite file")...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "test-labels",
			Usage: "add the labels of the test corpus to the decoding alphabet",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
	)

	return &cli.Command{
		Name:  "eval",
		Usage: "tag a gold corpus and report accuracy and the confusion matrix",
		Flags: flags,
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}
			copts, err := e.corpusOptions(c)
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.Out = e.ui.Out
			r.HasColor = !c.Bool("no-color")

			return e.evalCommand(c.Context, mopts, copts, EvalOptions{TestLabels: c.Bool("test-labels")}, r)
		},
	}
}

func (e *env) evalCommand(ctx context.Context, mopts ModelOptions, copts CorpusOptions, opts EvalOptions, r *render.Renderer) error {
	m, err := e.loadModel(mopts)
	if err != nil {
		return err
	}

	dr, err := NewDocReader(e.pool, copts.Path, copts.Options)
	if err != nil {
		return err
	}

	lib, err := e.readLibrary(dr)
	if err != nil {
		return err
	}

	sentences := lib.AllSentences()
	if len(sentences) == 0 {
		return fmt.Errorf("test corpus %s has no sentences", copts.Path)
	}

	labels := m.Labels()
	if opts.TestLabels {
		labels = union(labels, corpus.Labels(sentences))
	}

	p, err := e.newTagger(mopts, m, labels)
	if err != nil {
		return err
	}

	observations := corpus.Observations(sentences)
	gold := corpus.Gold(sentences)

	progress, bar := e.startBar(len(sentences))
	paths, err := p.TagAll(ctx, observations, func(done, total int) {
		bar.Incr()
	})
	progress.Stop()
	if err != nil {
		return err
	}

	vocab := m.Vocabulary()
	h := eval.NewHandler()
	for i, path := range paths {
		if err := h.AggregateWords(observations[i], gold[i], path.Labels, vocab); err != nil {
			return fmt.Errorf("sentence %d: %w", i, err)
		}
	}

	stats := h.Get()
	e.logger.Info("evaluation done",
		zap.Int("sentences", len(sentences)),
		zap.Int("tokens", stats.Total),
		zap.Float64("accuracy", stats.Accuracy()))

	r.Report(stats)
	return nil
}

// union returns the sorted labels of a and b without duplicates.
func union(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range append(append([]string{}, a...), b...) {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
