package main

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/hmmtag/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by all commands, built before any of them runs.
type env struct {
	ui     UI
	cfg    *config.Config
	logger *zap.Logger
	pool   *Pool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "hmmtag: %v\n", err)
}

func run(args []string, ui UI) error {
	e := &env{ui: ui, pool: &Pool{}}
	defer e.close()

	return newApp(e).Run(args)
}

func (e *env) close() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	_ = e.pool.Close()
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:                 "hmmtag",
		Usage:                "train and run a hidden Markov model part of speech tagger",
		Writer:               e.ui.Out,
		ErrWriter:            e.ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"HMMTAG_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log at debug level",
			},
		},
		Before: e.setup,
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			trainCmd(e),
			tagCmd(e),
			evalCmd(e),
			queryCmd(e),
			labelsCmd(e),
			statCmd(e),
			importCorpusCmd(e),
			exportModelCmd(e),
			serveCmd(e),
			bashCmd(e),
			versionCmd(e),
		},
	}
}

// setup loads the configuration and builds the logger.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	e.cfg = cfg

	level := cfg.LogLevel
	if c.Bool("verbose") {
		level = "debug"
	}

	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	e.logger = logger

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(lvl)
	cfgZap.OutputPaths = []string{"stderr"}
	cfgZap.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfgZap.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
