package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/revelaction/hmmtag/server"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(e *env) *cli.Command {
	flags := append(modelFlags(), decodeFlags()...)
	flags = append(flags, &cli.StringFlag{
		Name:    "listen",
		Aliases: []string{"l"},
		Usage:   "address of the HTTP server",
	})

	return &cli.Command{
		Name:  "serve",
		Usage: "serve the tagging HTTP API",
		Flags: flags,
		Action: func(c *cli.Context) error {
			mopts, err := e.modelOptions(c)
			if err != nil {
				return err
			}

			listen := e.cfg.Listen
			if c.IsSet("listen") {
				listen = c.String("listen")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return e.serveCommand(ctx, mopts, listen)
		},
	}
}

func (e *env) serveCommand(ctx context.Context, mopts ModelOptions, listen string) error {
	m, err := e.loadModel(mopts)
	if err != nil {
		return err
	}

	p, err := e.newTagger(mopts, m, m.Labels())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    listen,
		Handler: server.New(p, m.Labels(), e.logger),
	}

	errc := make(chan error, 1)
	go func() {
		e.logger.Info("Starting server", zap.String("listen", listen), zap.String("model", mopts.Name))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	e.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
