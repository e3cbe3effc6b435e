package debugdraw

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes through slog text handlers: INFO and DEBUG to stdout,
// WARN and ERROR to stderr.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *slog.Logger
	err    *slog.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    slog.New(slog.NewTextHandler(os.Stdout, opts)),
		err:    slog.New(slog.NewTextHandler(os.Stderr, opts)),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

// WithPrefix returns a logger sharing the handlers with a different prefix.
func (l *DefaultLogger) WithPrefix(prefix string) *DefaultLogger {
	return &DefaultLogger{
		debug:  l.DebugEnabled(),
		prefix: prefix,
		out:    l.out,
		err:    l.err,
	}
}

func (l *DefaultLogger) log(dst *slog.Logger, level slog.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		dst.Log(context.Background(), level, msg, "component", l.prefix)
		return
	}
	dst.Log(context.Background(), level, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.log(l.out, slog.LevelDebug, format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.log(l.out, slog.LevelInfo, format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.log(l.err, slog.LevelWarn, format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.log(l.err, slog.LevelError, format, args...)
}

// Nop logger

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
