package main

import (
	"github.com/revelaction/hmmtag/query"
	"github.com/urfave/cli/v2"
)

func queryCmd(e *env) *cli.Command {
	flags := append(modelFlags(), decodeFlags()...)
	flags = append(flags, renderFlags()...)

	return &cli.Command{
		Name:  "query",
		Usage: "tag sentences typed in an interactive prompt",
		Flags: flags,
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}

			r, err := e.newRenderer(c)
			if err != nil {
				return err
			}

			m, err := e.loadModel(mopts)
			if err != nil {
				return err
			}

			p, err := e.newTagger(mopts, m, m.Labels())
			if err != nil {
				return err
			}

			// now present the REPL
			return query.NewHandler(p, m, r).Run()
		},
	}
}
