package helpers

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Named is anything that can report the title of the running scenario.
// *testing.T satisfies it.
type Named interface {
	Name() string
}

// StatusLogger writes one pass/fail line per scenario. A nil Out writes to
// the current os.Stdout.
type StatusLogger struct {
	Out io.Writer
	mu  sync.Mutex
}

var stdoutLogger = &StatusLogger{}

// Log writes "<title> ✅ Passed" or "<title> ❌ Failed". Write errors are dropped.
func (l *StatusLogger) Log(n Named, passed bool) {
	status := "❌ Failed"
	if passed {
		status = "✅ Passed"
	}

	title := "<unnamed>"
	if n != nil {
		title = n.Name()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", title, status)
}

// DefaultStatusLogger returns the logger that writes to stdout.
func DefaultStatusLogger() *StatusLogger {
	return stdoutLogger
}

// LogTestStatus logs the outcome of the current scenario to stdout.
func LogTestStatus(n Named, passed bool) {
	stdoutLogger.Log(n, passed)
}
