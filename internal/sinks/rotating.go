package sinks

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/logger"
)

const (
	// DefaultDateFormat renders days as YYYY-MM-DD.
	DefaultDateFormat = "2006-01-02"
	// DefaultFilenameFormat places the date after the base name.
	DefaultFilenameFormat = "{filename}-{date}"
)

// RotatingFile appends records to one file per calendar day and keeps at most
// maxFiles of them. The target path is recomputed on every write.
type RotatingFile struct {
	mu         sync.Mutex
	dir        string
	name       string
	ext        string
	maxFiles   int
	dateFormat string
	nameFormat string
	now        func() time.Time
}

// RotatingOption configures a RotatingFile.
type RotatingOption func(*RotatingFile)

// WithDateFormat sets the Go time layout used for the {date} placeholder.
func WithDateFormat(layout string) RotatingOption {
	return func(s *RotatingFile) { s.dateFormat = layout }
}

// WithFilenameFormat sets the template for daily file names. It must contain
// {date} and may contain {filename}.
func WithFilenameFormat(format string) RotatingOption {
	return func(s *RotatingFile) { s.nameFormat = format }
}

// WithClock replaces time.Now when picking the current day.
func WithClock(now func() time.Time) RotatingOption {
	return func(s *RotatingFile) { s.now = now }
}

// NewRotatingFile returns a sink writing next to filename. maxFiles of 0 keeps
// every file. The directory is created if needed and must be writable.
func NewRotatingFile(filename string, maxFiles int, opts ...RotatingOption) (*RotatingFile, error) {
	if filename == "" {
		return nil, errors.New("rotating log: filename is required")
	}
	if maxFiles < 0 {
		return nil, errors.Newf("rotating log: max files must not be negative, got %d", maxFiles)
	}

	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	s := &RotatingFile{
		dir:        filepath.Dir(filename),
		name:       strings.TrimSuffix(base, ext),
		ext:        ext,
		maxFiles:   maxFiles,
		dateFormat: DefaultDateFormat,
		nameFormat: DefaultFilenameFormat,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !strings.Contains(s.nameFormat, "{date}") {
		return nil, errors.WithHint(
			errors.Newf("rotating log: filename format %q has no {date} placeholder", s.nameFormat),
			"use something like {filename}-{date}")
	}
	if s.dateFormat == "" || strings.ContainsAny(s.dateFormat, `/\`) {
		return nil, errors.Newf("rotating log: invalid date format %q", s.dateFormat)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "rotating log: create directory %s", s.dir)
	}
	if !writable(s.dir) {
		return nil, errors.Newf("rotating log: directory %s is not writable", s.dir)
	}
	return s, nil
}

// Handle appends rec to today's file, rotating and pruning first when today's
// file does not exist yet. It reports false when the append fails.
func (s *RotatingFile) Handle(rec logger.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timed := s.timedFilename(s.now())
	s.rotate(timed)
	return appendFile(timed, Format(rec)) == nil
}

// CurrentFile is the path today's records go to.
func (s *RotatingFile) CurrentFile() string {
	return s.timedFilename(s.now())
}

func (s *RotatingFile) timedFilename(day time.Time) string {
	r := strings.NewReplacer("{filename}", s.name, "{date}", day.Format(s.dateFormat))
	return filepath.Join(s.dir, r.Replace(s.nameFormat)+s.ext)
}

func (s *RotatingFile) globPattern() string {
	r := strings.NewReplacer("{filename}", globEscape(s.name), "{date}", "*")
	return filepath.Join(globEscape(s.dir), r.Replace(globEscape(s.nameFormat))+globEscape(s.ext))
}

// rotate prunes old daily files on the first write of a day. Every failure
// here is ignored.
func (s *RotatingFile) rotate(timed string) {
	if _, err := os.Stat(timed); err == nil {
		return
	}
	if s.maxFiles == 0 {
		return
	}

	if writable(s.dir) {
		touch(timed)
	}
	matches, err := filepath.Glob(s.globPattern())
	if err != nil || len(matches) <= s.maxFiles {
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	for _, stale := range matches[s.maxFiles:] {
		if writable(stale) {
			_ = os.Remove(stale)
		}
	}
}

func touch(path string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err == nil {
		_ = f.Close()
	}
}

// appendFile writes line with a single write on an O_APPEND descriptor.
func appendFile(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		case '\\':
			if runtime.GOOS == "windows" {
				b.WriteRune(r)
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
