package logger

import (
	"reflect"
	"time"
)

// Record is a single log call, stamped by the Logger and handed to every sink.
type Record struct {
	Timestamp time.Time
	Channel   string
	// Level is the rank from the severity table, 0 for unknown names.
	Level     int
	LevelName string
	Message   string
	Context   []string
}

// Sink durably records formatted log records. Handle reports whether the
// record was written; a false result is never retried.
type Sink interface {
	Handle(rec Record) bool
}

// SinkName is the registration key of a sink: its implementation type, so a
// logger holds at most one sink per type.
func SinkName(s Sink) string {
	return reflect.TypeOf(s).String()
}
