package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type ExportModelOptions struct {
	To string
	As string
}

func exportModelCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export-model",
		Usage: "copy a model to another repository, a JSON directory or a SQLite file",
		Flags: append(modelFlags(),
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target directory or SQLite file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "as",
				Usage: "name of the model in the target, defaults to the source name",
			},
		),
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}
			return e.exportModelCommand(mopts, ExportModelOptions{To: c.String("to"), As: c.String("as")})
		},
	}
}

func (e *env) exportModelCommand(mopts ModelOptions, opts ExportModelOptions) error {
	m, err := e.loadModel(mopts)
	if err != nil {
		return err
	}

	dst, err := NewModelRepository(e.pool, opts.To)
	if err != nil {
		return err
	}

	name := opts.As
	if name == "" {
		name = mopts.Name
	}

	if err := dst.WriteModel(name, m); err != nil {
		return fmt.Errorf("failed to write model %s: %w", name, err)
	}

	fmt.Fprintf(e.ui.Out, "Successfully exported model %s from %s to %s as %s\n", mopts.Name, mopts.Path, opts.To, name)
	return nil
}
