package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/render"
	"github.com/urfave/cli/v2"
)

// Option structs for the commands, resolved from flags over the config.
type ModelOptions struct {
	Path    string
	Name    string
	Floor   float64
	Workers int
}

type CorpusOptions struct {
	Path string
	corpus.Options
}

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "model repository: a directory or a SQLite file",
			EnvVars: []string{"HMMTAG_MODEL_PATH"},
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "model name inside the repository",
		},
	}
}

func decodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "floor",
			Usage: "probability substituted for unseen starts, transitions and emissions",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "number of decoding workers",
		},
	}
}

func corpusFlags(usage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "corpus",
			Aliases: []string{"C"},
			Usage:   usage,
			EnvVars: []string{"HMMTAG_CORPUS_PATH"},
		},
		&cli.StringFlag{
			Name:  "separator",
			Usage: "separator between word and tag",
		},
		&cli.StringFlag{
			Name:  "boundary",
			Usage: "tag closing a sentence, empty reads every file as one sequence",
		},
	}
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   render.DefaultFormat,
			Usage:   "output format: tagged, tags or columns",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
		&cli.BoolFlag{
			Name:    "prefix",
			Aliases: []string{"p"},
			Usage:   "prefix every sentence with its number and log probability",
		},
	}
}

func (e *env) modelOptions(c *cli.Context) (ModelOptions, error) {
	opts := ModelOptions{
		Path:    e.cfg.ModelPath,
		Name:    e.cfg.ModelName,
		Floor:   e.cfg.SmoothingFloor,
		Workers: e.cfg.Workers,
	}

	if c.IsSet("model") {
		opts.Path = c.String("model")
	}
	if c.IsSet("name") {
		opts.Name = c.String("name")
	}
	if c.IsSet("floor") {
		opts.Floor = c.Float64("floor")
	}
	if c.IsSet("workers") {
		opts.Workers = c.Int("workers")
	}

	if opts.Path == "" {
		return opts, errors.New("Model path must be specified via --model or HMMTAG_MODEL_PATH")
	}
	if opts.Name == "" {
		return opts, errors.New("Model name must not be empty")
	}
	if opts.Floor <= 0 || opts.Floor >= 1 {
		return opts, fmt.Errorf("%w: %g", hmm.ErrInvalidFloor, opts.Floor)
	}

	return opts, nil
}

func (e *env) corpusOptions(c *cli.Context) (CorpusOptions, error) {
	opts := CorpusOptions{
		Path:    e.cfg.CorpusPath,
		Options: e.cfg.CorpusOptions(),
	}

	if c.IsSet("corpus") {
		opts.Path = c.String("corpus")
	}
	if c.IsSet("separator") {
		opts.Separator = c.String("separator")
	}
	if c.IsSet("boundary") {
		opts.Boundary = c.String("boundary")
	}

	if opts.Path == "" {
		return opts, errors.New("Corpus path must be specified via --corpus or HMMTAG_CORPUS_PATH")
	}
	if opts.Separator == "" {
		return opts, errors.New("separator must not be empty")
	}

	return opts, nil
}

func (e *env) newRenderer(c *cli.Context) (*render.Renderer, error) {
	r := render.NewRenderer()
	r.Out = e.ui.Out
	r.HasColor = !c.Bool("no-color")
	r.HasPrefix = c.Bool("prefix")
	r.Separator = e.cfg.Separator

	format := c.String("format")
	for _, f := range render.SupportedFormats() {
		if f == format {
			r.Format = format
			return r, nil
		}
	}

	return nil, fmt.Errorf("unsupported format %q, use one of %v", format, render.SupportedFormats())
}
