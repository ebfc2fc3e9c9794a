package main

import (
	"fmt"

	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/tagger"
	"go.uber.org/zap"
)

// modelTolerance bounds the deviation of a stored row sum from 1.
const modelTolerance = 1e-6

// loadModel reads and validates a stored model.
func (e *env) loadModel(opts ModelOptions) (*hmm.Model, error) {
	repo, err := NewModelRepository(e.pool, opts.Path)
	if err != nil {
		return nil, err
	}

	m, err := repo.ReadModel(opts.Name)
	if err != nil {
		return nil, err
	}

	if err := m.Validate(modelTolerance); err != nil {
		return nil, fmt.Errorf("model %s: %w", opts.Name, err)
	}

	return m, nil
}

// newTagger compiles m over labels and starts a decoding pool.
func (e *env) newTagger(opts ModelOptions, m *hmm.Model, labels []string) (*tagger.Pool, error) {
	compiled, err := hmm.NewDecoder(opts.Floor).Compile(labels, m)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("model compiled",
		zap.Int("labels", len(labels)),
		zap.Float64("floor", opts.Floor),
		zap.Int("workers", opts.Workers))

	return tagger.New(compiled, opts.Workers, e.logger), nil
}
