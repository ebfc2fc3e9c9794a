package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/render"
	"github.com/urfave/cli/v2"
)

// sentence splitting modes of untagged input
const (
	splitTerminal = "terminal"
	splitLine     = "line"
	splitNone     = "none"
)

type TagOptions struct {
	Split string
	JSON  bool
	Files []string
}

func tagCmd(e *env) *cli.Command {
	flags := append(modelFlags(), decodeFlags()...)
	flags = append(flags, renderFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "split",
			Value: splitTerminal,
			Usage: "sentence splitting of the input: terminal (. ? !), line or none",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "write the results as JSON",
		},
	)

	return &cli.Command{
		Name:      "tag",
		Usage:     "tag untagged text read from files or standard input",
		ArgsUsage: "[file...]",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}

			r, err := e.newRenderer(c)
			if err != nil {
				return err
			}

			opts := TagOptions{
				Split: c.String("split"),
				JSON:  c.Bool("json"),
				Files: c.Args().Slice(),
			}

			var rr render.ResultRenderer = r
			if opts.JSON {
				rr = render.NewJSONRenderer(e.ui.Out)
			}

			return e.tagCommand(c.Context, mopts, opts, os.Stdin, rr)
		},
	}
}

func (e *env) tagCommand(ctx context.Context, mopts ModelOptions, opts TagOptions, stdin io.Reader, rr render.ResultRenderer) error {
	text, err := readInput(opts.Files, stdin)
	if err != nil {
		return err
	}

	sequences, err := splitInput(text, opts.Split)
	if err != nil {
		return err
	}
	if len(sequences) == 0 {
		return nil
	}

	m, err := e.loadModel(mopts)
	if err != nil {
		return err
	}

	p, err := e.newTagger(mopts, m, m.Labels())
	if err != nil {
		return err
	}

	paths, err := p.TagAll(ctx, sequences, nil)
	if err != nil {
		return err
	}

	results := make([]render.Result, len(paths))
	for i, path := range paths {
		results[i] = render.Result{Id: i, Tokens: sequences[i], Tags: path.Labels, LogProb: path.LogProb}
	}

	rr.Render(results)
	return nil
}

func readInput(files []string, stdin io.Reader) (string, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	var str strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("IO error: %w", err)
		}
		str.Write(data)
		str.WriteString("\n")
	}
	return str.String(), nil
}

func splitInput(text, mode string) ([][]string, error) {
	switch mode {
	case splitTerminal:
		return corpus.Split(corpus.Tokenize(text), corpus.IsTerminal), nil
	case splitNone:
		return corpus.Split(corpus.Tokenize(text), nil), nil
	case splitLine:
		var sequences [][]string
		scanner := bufio.NewScanner(strings.NewReader(text))
		for scanner.Scan() {
			if words := corpus.Tokenize(scanner.Text()); len(words) > 0 {
				sequences = append(sequences, words)
			}
		}
		return sequences, scanner.Err()
	}

	return nil, fmt.Errorf("unknown split mode %q", mode)
}
