package notify

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier receives the transient user-facing notifications produced by
// mutations: one success or error message per operation, never both.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// ZapNotifier routes notifications to a structured logger
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a new ZapNotifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

func (n *ZapNotifier) Success(msg string) { n.logger.Info(msg, zap.String("kind", "success")) }
func (n *ZapNotifier) Info(msg string)    { n.logger.Info(msg, zap.String("kind", "info")) }
func (n *ZapNotifier) Error(msg string)   { n.logger.Warn(msg, zap.String("kind", "error")) }

// ConsoleNotifier prints notifications to a writer, one per line
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a new ConsoleNotifier
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Success(msg string) { fmt.Fprintf(n.out, "✔ %s\n", msg) }
func (n *ConsoleNotifier) Info(msg string)    { fmt.Fprintf(n.out, "• %s\n", msg) }
func (n *ConsoleNotifier) Error(msg string)   { fmt.Fprintf(n.out, "✘ %s\n", msg) }
