package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

// logLevel is shared by every logger newLog returns; -v and -q move it.
var logLevel = new(slog.LevelVar)

var theLog = newLog(os.Stderr)

// newLog returns a logger writing logfmt lines to w with no time. Info lines
// carry no level, other levels are written in lower case.
func newLog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logAttr,
	}))
}

func logAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		lvl, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		if lvl == slog.LevelInfo {
			return slog.Attr{}
		}
		return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
	}
	return a
}

// applyLogLevel sets the level of every command logger from -v and -q. With
// -q parse warnings are not shown.
func (cfg *MainConfig) applyLogLevel() error {
	switch {
	case cfg.Verbose && cfg.Quiet:
		return fmt.Errorf("%w: -v and -q cannot be combined", cli.ErrUsage)
	case cfg.Verbose:
		logLevel.Set(slog.LevelDebug)
	case cfg.Quiet:
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
	return nil
}
