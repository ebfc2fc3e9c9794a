package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

type LabelsOptions struct {
	// Models lists the stored model names instead of labels
	Models bool
}

func labelsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: "print the label alphabet of a model, or the stored model names",
		Flags: append(modelFlags(), &cli.BoolFlag{
			Name:  "models",
			Usage: "list the models of the repository",
		}),
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}
			return e.labelsCommand(mopts, LabelsOptions{Models: c.Bool("models")})
		},
	}
}

func (e *env) labelsCommand(mopts ModelOptions, opts LabelsOptions) error {
	if opts.Models {
		repo, err := NewModelRepository(e.pool, mopts.Path)
		if err != nil {
			return err
		}
		names, err := repo.ModelNames()
		if err != nil {
			return err
		}
		for id, name := range names {
			fmt.Fprintf(e.ui.Out, "📖 %d %s \n", id, name)
		}
		return nil
	}

	m, err := e.loadModel(mopts)
	if err != nil {
		return err
	}

	labels := m.Labels()
	if len(labels) > 0 {
		fmt.Fprintln(e.ui.Out, strings.Join(labels, ", "))
	}

	return nil
}
