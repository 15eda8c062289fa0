package sinks

import (
	"strings"

	"github.com/specialistvlad/consolekit/internal/logger"
)

// TimestampLayout is the ISO-8601 layout stamped at the start of every line.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// Format renders rec as
//
//	[<timestamp>]  <channel>.<LEVEL>  <message>
//	<context>
//	<blank line>
//
// Context fragments are joined without a separator and trimmed of newlines.
func Format(rec logger.Record) []byte {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(rec.Timestamp.Format(TimestampLayout))
	b.WriteString("]  ")
	b.WriteString(rec.Channel)
	b.WriteByte('.')
	b.WriteString(strings.ToUpper(rec.LevelName))
	b.WriteString("  ")
	b.WriteString(rec.Message)
	b.WriteByte('\n')
	b.WriteString(strings.Trim(strings.Join(rec.Context, ""), "\n"))
	b.WriteString("\n\n")
	return []byte(b.String())
}
