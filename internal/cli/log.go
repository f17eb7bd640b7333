package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any key/value pairs, e.g.
// "repaired 3 graphs elapsed=12ms bridges=4".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, keyvals...)
}

// commandScope is what a running command finds in its context: the CLI
// logger and the command's name. The prefixed logger is derived on lookup so
// level changes made after the scope was attached still apply.
type commandScope struct {
	base    *log.Logger
	command string
}

type scopeKey struct{}

// withCommand attaches base and the name of the running command to ctx.
func withCommand(ctx context.Context, base *log.Logger, command string) context.Context {
	return context.WithValue(ctx, scopeKey{}, commandScope{base: base, command: command})
}

// commandLogger returns the CLI logger prefixed with the running command's
// name, or log.Default() outside a command.
func commandLogger(ctx context.Context) *log.Logger {
	s, ok := ctx.Value(scopeKey{}).(commandScope)
	if !ok || s.base == nil {
		return log.Default()
	}
	if s.command == "" {
		return s.base
	}
	return s.base.WithPrefix(s.command)
}
