// Package logging provides leveled logging and per-day decision tracing for
// simulation runs. It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (run progress, per-day summaries)
//   - A DecisionLogger for structured JSONL day-by-day traces (decisions.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nvandessel/contagion/internal/constants"
)

// LevelTrace is a custom slog level below Debug. At this level every
// individual transmission draw is logged.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DecisionLogger writes one JSON object per line for each simulation event.
// Fields set with With are stamped on every event, so lines from several runs
// appended to the same file can be told apart. A nil DecisionLogger is safe
// to use; all methods are no-ops on a nil receiver.
type DecisionLogger struct {
	mu     sync.Mutex
	w      io.WriteCloser
	fields map[string]any
	now    func() time.Time
}

// NewDecisionLogger opens dir/decisions.jsonl for append. At "info" level
// (the default) it returns nil and creates nothing. It also returns nil if
// the file cannot be opened.
func NewDecisionLogger(dir string, level string) *DecisionLogger {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, constants.DecisionLogFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	return NewDecisionLoggerTo(f)
}

// NewDecisionLoggerTo writes decision events to w. Close closes w.
func NewDecisionLoggerTo(w io.WriteCloser) *DecisionLogger {
	return &DecisionLogger{w: w, now: time.Now}
}

// With stamps key=value on every subsequent event and returns dl.
func (dl *DecisionLogger) With(key string, value any) *DecisionLogger {
	if dl == nil {
		return nil
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.fields == nil {
		dl.fields = make(map[string]any)
	}
	dl.fields[key] = value
	return dl
}

// Log writes an event as a single JSONL line with a "time" field added.
// Event keys win over fields set with With. The caller's map is not mutated.
func (dl *DecisionLogger) Log(event map[string]any) {
	if dl == nil {
		return
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.w == nil {
		return
	}

	entry := make(map[string]any, len(dl.fields)+len(event)+1)
	for k, v := range dl.fields {
		entry[k] = v
	}
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = dl.now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = dl.w.Write(append(data, '\n'))
}

// Close closes the underlying writer. Safe to call on nil receiver and more
// than once.
func (dl *DecisionLogger) Close() {
	if dl == nil {
		return
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.w == nil {
		return
	}
	dl.w.Close()
	dl.w = nil
}
