package main

import (
	"fmt"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func trainCmd(e *env) *cli.Command {
	flags := append(modelFlags(), corpusFlags("training corpus: a tagged file, a directory or a SQLite file")...)
	flags = append(flags, &cli.StringFlag{
		Name:  "start-mode",
		Usage: "start probability estimator: unigram or initial",
	})

	return &cli.Command{
		Name:  "train",
		Usage: "estimate a model from a tagged corpus",
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

			mode := e.cfg.Mode()
			if c.IsSet("start-mode") {
				m, ok := hmm.ParseStartMode(c.String("start-mode"))
				if !ok {
					return fmt.Errorf("unknown start mode %q", c.String("start-mode"))
				}
				mode = m
			}

			return e.trainCommand(mopts, copts, mode)
		},
	}
}

func (e *env) trainCommand(mopts ModelOptions, copts CorpusOptions, mode hmm.StartMode) error {
	dr, err := NewDocReader(e.pool, copts.Path, copts.Options)
	if err != nil {
		return err
	}

	lib, err := e.readLibrary(dr)
	if err != nil {
		return err
	}

	sentences := lib.AllSentences()
	m, err := hmm.NewEstimator(hmm.WithStartMode(mode)).TrainSentences(corpus.Pairs(sentences))
	if err != nil {
		return fmt.Errorf("training on %s: %w", copts.Path, err)
	}

	repo, err := NewModelRepository(e.pool, mopts.Path)
	if err != nil {
		return err
	}
	if err := repo.WriteModel(mopts.Name, m); err != nil {
		return err
	}

	e.logger.Info("model trained",
		zap.String("name", mopts.Name),
		zap.Int("sentences", len(sentences)),
		zap.Int("labels", len(m.Labels())),
		zap.Int("vocabulary", len(m.Vocabulary())),
		zap.Stringer("start_mode", mode))

	fmt.Fprintf(e.ui.Out, "Trained model %s on %d sentences: %d labels, %d words\n",
		mopts.Name, len(sentences), len(m.Labels()), len(m.Vocabulary()))
	return nil
}
