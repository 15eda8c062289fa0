package sinks

import (
	"io"
	"sync"

	"github.com/specialistvlad/consolekit/internal/logger"
)

// Stream writes formatted records to an io.Writer, usually stderr.
type Stream struct {
	mu sync.Mutex
	w  io.Writer
}

func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

func (s *Stream) Handle(rec logger.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(Format(rec))
	return err == nil
}
