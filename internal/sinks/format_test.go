package sinks

import (
	"testing"
	"time"

	"github.com/specialistvlad/consolekit/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 10, 19, 8, 5, 3, 0, time.FixedZone("CEST", 2*60*60))
	testCases := []struct {
		name string
		rec  logger.Record
		want string
	}{
		{
			name: "empty context keeps the separator",
			rec:  logger.Record{Timestamp: ts, Channel: "app", LevelName: "INFO", Message: "started"},
			want: "[2026-10-19T08:05:03+0200]  app.INFO  started\n\n\n",
		},
		{
			name: "fragments joined and trimmed",
			rec: logger.Record{
				Timestamp: ts, Channel: "cli", LevelName: "warning", Message: "slow",
				Context: []string{"\nms=120\n", "rows=3\n\n"},
			},
			want: "[2026-10-19T08:05:03+0200]  cli.WARNING  slow\nms=120\nrows=3\n\n",
		},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, string(Format(tc.rec)), tc.name)
	}
}
