// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

const (
	// LoggerName appears in every event line.
	LoggerName = "SystemTracker"

	// TimestampLayout is the event line timestamp, millisecond precision.
	TimestampLayout = "2006-01-02 15:04:05,000"

	fileDateLayout = "20060102"
	journalIdent   = "systracker"
)

// Events is the sink for monitor events. EventLogger implements it.
type Events interface {
	Stats(kind, data string)
	Alert(msg string)
	Error(msg string)
}

// Discard is an Events sink that drops everything.
var Discard Events = discard{}

type discard struct{}

func (discard) Stats(string, string) {}
func (discard) Alert(string)         {}
func (discard) Error(string)         {}

// EventOption configures an EventLogger.
type EventOption func(*eventSink)

// WithConsole sets the writer every line is echoed to. Nil disables the echo.
// Default is stderr.
func WithConsole(w io.Writer) EventOption {
	return func(s *eventSink) {
		s.console = w
	}
}

// WithJournal forwards events to the systemd journal when its socket is
// available.
func WithJournal(enabled bool) EventOption {
	return func(s *eventSink) {
		s.journal = enabled
	}
}

// WithClock overrides the time source used for timestamps and file naming.
func WithClock(now func() time.Time) EventOption {
	return func(s *eventSink) {
		s.now = now
	}
}

// WithLevel sets the minimum level written. Default is Info.
func WithLevel(level slog.Level) EventOption {
	return func(s *eventSink) {
		s.level = level
	}
}

// eventSink owns the log file and is shared by all derived handlers.
type eventSink struct {
	mu      sync.Mutex
	dir     string
	file    *os.File
	console io.Writer
	journal bool
	level   slog.Level
	now     func() time.Time
}

// EventLogger writes monitor events to a daily file under a directory,
// echoing each line to the console.
//
// Lines look like:
//
//	2025-01-15 10:30:00,123 - SystemTracker - WARNING - ALERT: CPU usage is 91.00% (threshold: 80.00%)
type EventLogger struct {
	sink   *eventSink
	logger *slog.Logger
}

// NewEventLogger creates dir if needed and opens today's log file in append mode.
func NewEventLogger(dir string, opts ...EventOption) (*EventLogger, error) {
	s := &eventSink{
		dir:     dir,
		console: os.Stderr,
		level:   slog.LevelInfo,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}

	if err := s.open(s.now()); err != nil {
		return nil, err
	}

	if s.journal && !journal.Enabled() {
		slog.Debug("journal socket not available, journald forwarding disabled")
		s.journal = false
	}

	return &EventLogger{
		sink:   s,
		logger: slog.New(&eventHandler{sink: s}),
	}, nil
}

// Path returns the file currently being written.
func (l *EventLogger) Path() string {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.file == nil {
		return ""
	}
	return l.sink.file.Name()
}

// Stats records a statistics line: "<kind>: <data>".
func (l *EventLogger) Stats(kind, data string) {
	l.logger.Info(kind + ": " + data)
}

// Alert records a warning line: "ALERT: <msg>".
func (l *EventLogger) Alert(msg string) {
	l.logger.Warn("ALERT: " + msg)
}

// Error records an error line: "ERROR: <msg>".
func (l *EventLogger) Error(msg string) {
	l.logger.Error("ERROR: " + msg)
}

// Close closes the log file. Later events are echoed but not persisted.
func (l *EventLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	return err
}

// FileName returns the event log file name for the given day.
func FileName(t time.Time) string {
	return "tracker_" + t.Format(fileDateLayout) + ".log"
}

// open opens the file for t's day. The logger keeps writing to it for its
// whole lifetime; a new day starts a new file on the next run.
func (s *eventSink) open(t time.Time) error {
	path := filepath.Join(s.dir, FileName(t))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	s.file = f
	return nil
}

func (s *eventSink) write(r slog.Record, attrs string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	line := fmt.Sprintf("%s - %s - %s - %s%s\n",
		now.Format(TimestampLayout), LoggerName, levelName(r.Level), r.Message, attrs)

	var fileErr error
	if s.file != nil {
		if _, err := io.WriteString(s.file, line); err != nil && fileErr == nil {
			fileErr = err
		}
	}
	if s.console != nil {
		_, _ = io.WriteString(s.console, line)
	}
	if s.journal {
		vars := map[string]string{"SYSLOG_IDENTIFIER": journalIdent}
		if err := journal.Send(r.Message, journalPriority(r.Level), vars); err != nil && fileErr == nil {
			fileErr = err
		}
	}
	return fileErr
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func journalPriority(l slog.Level) journal.Priority {
	switch {
	case l >= slog.LevelError:
		return journal.PriErr
	case l >= slog.LevelWarn:
		return journal.PriWarning
	case l >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// eventHandler renders records as event lines. Attributes, if any, follow
// the message as key=value pairs.
type eventHandler struct {
	sink   *eventSink
	prefix string
	attrs  []slog.Attr
}

func (h *eventHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.level
}

func (h *eventHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	return h.sink.write(r, b.String())
}

func (h *eventHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &nh
}

func (h *eventHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix+a.Key+".", ga)
		}
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Any())
}
