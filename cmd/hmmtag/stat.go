package main

import (
	"fmt"
	"strconv"

	"github.com/revelaction/hmmtag/render"
	sent "github.com/revelaction/hmmtag/sentence"
	"github.com/revelaction/hmmtag/stat"
	"github.com/urfave/cli/v2"
)

func statCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics of a tagged corpus or one of its docs",
		ArgsUsage: "[docId]",
		Flags: append(corpusFlags("tagged corpus: a file, a directory or a SQLite file"), &cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		}),
		Action: func(c *cli.Context) error {
			copts, err := e.corpusOptions(c)
			if err != nil {
				return err
			}

			var docId *int
			if c.Args().Len() > 0 {
				id, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid doc id %q", c.Args().First())
				}
				docId = &id
			}

			r := render.NewRenderer()
			r.Out = e.ui.Out
			r.HasColor = !c.Bool("no-color")

			return e.statCommand(copts, docId, r)
		},
	}
}

func (e *env) statCommand(copts CorpusOptions, docId *int, r *render.Renderer) error {
	dr, err := NewDocReader(e.pool, copts.Path, copts.Options)
	if err != nil {
		return err
	}

	var docs sent.Library
	if docId != nil {
		doc, err := dr.Read(*docId)
		if err != nil {
			return err
		}
		docs = sent.Library{doc}
	} else {
		docs, err = e.readLibrary(dr)
		if err != nil {
			return err
		}
	}

	hdl := stat.NewHandler()
	for _, doc := range docs {
		hdl.Aggregate(doc)
	}

	r.Stat(hdl.Get())
	return nil
}
