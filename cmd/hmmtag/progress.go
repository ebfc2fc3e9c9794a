package main

import (
	"github.com/gosuri/uiprogress"
	sent "github.com/revelaction/hmmtag/sentence"
	"github.com/revelaction/hmmtag/storage"
	"go.uber.org/zap"
)

// startBar starts a progress bar on the error stream. The caller stops the
// returned progress.
func (e *env) startBar(total int) (*uiprogress.Progress, *uiprogress.Bar) {
	if total < 1 {
		total = 1
	}

	p := uiprogress.New()
	p.Out = e.ui.Err
	p.Start()

	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()

	return p, bar
}

// readLibrary reads every doc of the corpus, preloading with a progress bar
// when the repository supports it.
func (e *env) readLibrary(dr storage.DocReader) (sent.Library, error) {
	if pl, ok := dr.(storage.Preloader); ok {
		p, bar := e.startBar(1)

		var currentName string
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			return currentName
		})

		err := pl.Preload(func(current, total int, name string) {
			if bar.Total <= 1 {
				bar.Total = total
				bar.Set(0)
			}
			currentName = name
			bar.Incr()
		})
		p.Stop()

		if err != nil {
			return nil, err
		}
	}

	lib, err := storage.ReadAll(dr)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("corpus loaded", zap.Int("docs", len(lib)))
	return lib, nil
}
