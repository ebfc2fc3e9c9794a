package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type ImportCorpusOptions struct {
	To string
}

func importCorpusCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import-corpus",
		Usage: "copy a tagged corpus into a SQLite database or a JSON doc directory",
		Flags: append(corpusFlags("source corpus: a file, a directory or a SQLite file"), &cli.StringFlag{
			Name:     "to",
			Usage:    "target SQLite file or directory",
			Required: true,
		}),
		Action: func(c *cli.Context) error {
			copts, err := e.corpusOptions(c)
			if err != nil {
				return err
			}
			return e.importCorpusCommand(copts, ImportCorpusOptions{To: c.String("to")})
		},
	}
}

func (e *env) importCorpusCommand(copts CorpusOptions, opts ImportCorpusOptions) error {
	src, err := NewDocReader(e.pool, copts.Path, copts.Options)
	if err != nil {
		return err
	}

	dst, err := NewDocWriter(e.pool, opts.To, copts.Options)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", copts.Path)
	docs, err := src.List()
	if err != nil {
		return err
	}

	progress, bar := e.startBar(len(docs))

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			progress.Stop()
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		if err := dst.Write(doc); err != nil {
			progress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
		bar.Incr()
	}
	progress.Stop()

	e.logger.Debug("corpus imported", zap.String("from", copts.Path), zap.String("to", opts.To), zap.Int("docs", count))

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs from %s to %s\n", count, copts.Path, opts.To)
	return nil
}
