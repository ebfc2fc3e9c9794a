// Package tagger decodes many observation sequences concurrently over a
// single compiled model.
package tagger

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/revelaction/hmmtag/hmm"
	"go.uber.org/zap"
)

// Progress is called after every decoded sequence with the number of
// finished sequences and the total.
type Progress func(done, total int)

// Pool runs Viterbi decoding with a fixed number of workers. The compiled
// model is shared read only, every decode allocates its own lattice.
type Pool struct {
	compiled *hmm.Compiled
	workers  int
	logger   *zap.Logger
}

// New returns a Pool of workers goroutines. A non positive workers value
// means runtime.NumCPU().
func New(compiled *hmm.Compiled, workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool{compiled: compiled, workers: workers, logger: logger}
}

func (p *Pool) Labels() []string {
	return p.compiled.Labels()
}

func (p *Pool) Workers() int {
	return p.workers
}

// Tag decodes a single sequence in the calling goroutine.
func (p *Pool) Tag(ctx context.Context, observations []string) (hmm.Path, error) {
	return p.compiled.Decode(ctx, observations)
}

type job struct {
	index        int
	observations []string
}

// TagAll decodes every sequence and returns the paths in input order. The
// first error cancels the remaining work and is returned.
func (p *Pool) TagAll(ctx context.Context, sequences [][]string, progress Progress) ([]hmm.Path, error) {
	paths := make([]hmm.Path, len(sequences))
	if len(sequences) == 0 {
		return paths, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.workers
	if workers > len(sequences) {
		workers = len(sequences)
	}

	p.logger.Debug("decoding", zap.Int("sequences", len(sequences)), zap.Int("workers", workers))

	jobs := make(chan job)
	done := make(chan int)

	var (
		once     sync.Once
		firstErr error
		wg       sync.WaitGroup
	)

	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				path, err := p.compiled.Decode(ctx, j.observations)
				if err != nil {
					fail(fmt.Errorf("sequence %d: %w", j.index, err))
					continue
				}
				paths[j.index] = path
				done <- j.index
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, obs := range sequences {
			select {
			case jobs <- job{index: i, observations: obs}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	finished := 0
	for range done {
		finished++
		if progress != nil {
			progress(finished, len(sequences))
		}
	}

	if firstErr != nil {
		p.logger.Debug("decoding failed", zap.Error(firstErr))
		return nil, firstErr
	}

	// canceled by the caller before all jobs were handed out
	if err := ctx.Err(); err != nil && finished < len(sequences) {
		return nil, err
	}

	return paths, nil
}
