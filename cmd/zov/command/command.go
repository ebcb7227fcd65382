// Package command implements the verbs of the zov command line tool.
//
// Every verb is a go-flags command: its struct tags declare the flags and
// positional arguments, and Execute runs it.
package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

// ErrCheckFailed is returned when a read-only command finds a damaged
// archive. The report has already been written.
var ErrCheckFailed = errors.New("archive check failed")

var (
	defaultOutput io.Writer = os.Stdout
	logOutput     io.Writer = os.Stderr
)

// cmd holds the flags shared by every verb that touches an archive.
type cmd struct {
	Verbose bool `short:"v" long:"verbose" description:"Log every entry processed"`
}

// logger returns a text logger on stderr. Verbose mode lowers the level to
// debug.
func (c *cmd) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
}

// interruptible returns a context canceled on SIGINT.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
