package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const lsName = "hnmd-lsp"

var (
	version = "0.1.0"

	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey && a.Value.String() == "INFO" {
				return slog.Attr{}
			}
			return a
		},
	}))
)

type lspConfig struct {
	Gops bool `cli:"name=gops desc='start the gops diagnostics agent'"`

	Cmd *cli.Command
}

func main() {
	cli.MainContext(context.Background(), lspCommand())
}

func lspCommand() *cli.Command {
	cfg := &lspConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Cmd, lsName).
		WithSynopsis("hnmd-lsp [-gops]").
		WithDescription("hnmd-lsp serves the language server protocol for hnmd on stdio.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}

func serve(cfg *lspConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Cmd.Parse(cc, args); err != nil {
		return err
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}
	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	server := newServer()
	conn := jsonrpc2.NewConn(stream)
	server.conn = conn
	conn.Go(ctx, protocol.ServerHandler(server, nil))
	theLog.Info("serving", "name", lsName, "version", version)
	<-conn.Done()
	return conn.Err()
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
