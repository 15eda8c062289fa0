// Package logger is the application logger: it stamps records with a channel,
// a timestamp and a rank from the severity table, and fans them out to its
// sinks in registration order.
package logger

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Logger forwards records to an ordered set of sinks keyed by sink type.
type Logger struct {
	mu      sync.Mutex
	channel string
	now     func() time.Time
	order   []string
	sinks   map[string]Sink
	handled int
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithSink pushes a sink at construction time.
func WithSink(s Sink) Option {
	return func(l *Logger) { l.pushLocked(s) }
}

// New returns a logger for channel with no sinks unless options add them.
func New(channel string, opts ...Option) *Logger {
	l := &Logger{
		channel: channel,
		now:     time.Now,
		sinks:   make(map[string]Sink),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Channel returns the channel stamped on every record.
func (l *Logger) Channel() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.channel
}

// SetChannel changes the channel for subsequent records.
func (l *Logger) SetChannel(channel string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.channel = channel
}

// PushSink registers s. A sink of the same type is replaced in place and keeps
// its position in the fan-out order.
func (l *Logger) PushSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pushLocked(s)
}

func (l *Logger) pushLocked(s Sink) {
	name := SinkName(s)
	if _, exists := l.sinks[name]; !exists {
		l.order = append(l.order, name)
	}
	l.sinks[name] = s
}

// UnloadSink removes the sink registered under name, if any.
func (l *Logger) UnloadSink(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sinks[name]; !ok {
		return
	}
	delete(l.sinks, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Sinks returns the registered sinks in fan-out order.
func (l *Logger) Sinks() []Sink {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sinksLocked()
}

func (l *Logger) sinksLocked() []Sink {
	out := make([]Sink, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.sinks[name])
	}
	return out
}

// HandledCount returns how many records have been logged.
func (l *Logger) HandledCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handled
}

// Log records message at level. Level names are upper-cased; names missing
// from the severity table are still forwarded, with rank 0. Sink failures are
// dropped.
func (l *Logger) Log(level, message string, context ...string) {
	name := strings.ToUpper(level)
	rank, _ := Rank(name)

	l.mu.Lock()
	rec := Record{
		Timestamp: l.now(),
		Channel:   l.channel,
		Level:     rank,
		LevelName: name,
		Message:   message,
		Context:   append([]string(nil), context...),
	}
	l.handled++
	sinks := l.sinksLocked()
	l.mu.Unlock()

	for _, s := range sinks {
		s.Handle(rec)
	}
}

// Debug logs at DEBUG.
func (l *Logger) Debug(message string, context ...string) {
	l.Log(Debug, message, context...)
}

// Info logs at INFO.
func (l *Logger) Info(message string, context ...string) {
	l.Log(Info, message, context...)
}

// Notice logs at NOTICE.
func (l *Logger) Notice(message string, context ...string) {
	l.Log(Notice, message, context...)
}

// Warning logs at WARNING.
func (l *Logger) Warning(message string, context ...string) {
	l.Log(Warning, message, context...)
}

// Error logs at ERROR.
func (l *Logger) Error(message string, context ...string) {
	l.Log(Error, message, context...)
}

// Critical logs at CRITICAL.
func (l *Logger) Critical(message string, context ...string) {
	l.Log(Critical, message, context...)
}

// Alert logs at ALERT.
func (l *Logger) Alert(message string, context ...string) {
	l.Log(Alert, message, context...)
}

// Emergency logs at EMERGENCY.
func (l *Logger) Emergency(message string, context ...string) {
	l.Log(Emergency, message, context...)
}

// Close closes every sink that holds resources.
func (l *Logger) Close() error {
	var errs error
	for _, s := range l.Sinks() {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = errors.CombineErrors(errs, errors.Wrapf(err, "close %s", SinkName(s)))
			}
		}
	}
	return errs
}
