package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quotaError struct{}

func (quotaError) Error() string { return "quota exceeded" }

// captureSink keeps the records handed to it.
type captureSink struct{ records []logger.Record }

func (s *captureSink) Handle(rec logger.Record) bool {
	s.records = append(s.records, rec)
	return true
}

func TestCodeSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		code Code
		want string
	}{
		{CodeError, logger.Critical},
		{CodeCoreError, logger.Critical},
		{CodeParse, logger.Alert},
		{CodeCompileError, logger.Alert},
		{CodeWarning, logger.Warning},
		{CodeCoreWarning, logger.Warning},
		{CodeCompileWarning, logger.Warning},
		{CodeUserWarning, logger.Warning},
		{CodeUserError, logger.Error},
		{CodeRecoverableError, logger.Error},
		{CodeNotice, logger.Notice},
		{CodeUserNotice, logger.Notice},
		{CodeStrict, logger.Notice},
		{CodeDeprecated, logger.Notice},
		{CodeUserDeprecated, logger.Notice},
		{0, logger.Debug},
		{3, logger.Debug},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.code.Severity(), tc.code.String())
	}
	assert.Equal(t, "E_USER_DEPRECATED", CodeUserDeprecated.String())
	assert.Equal(t, "CODE_3", Code(3).String())
}

func TestWithCode(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WithCode(nil, CodeError))

	base := errors.New("disk full")
	err := errors.Wrap(WithCode(base, CodeUserWarning), "write report")

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUserWarning, code)
	assert.Equal(t, logger.Warning, SeverityOf(err))
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, "write report: disk full", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "code: E_USER_WARNING")

	_, ok = CodeOf(base)
	assert.False(t, ok)
	assert.Equal(t, logger.Debug, SeverityOf(base))
}

func TestPlainRenderer(t *testing.T) {
	t.Parallel()

	err := WithCode(errors.Wrap(quotaError{}, "upload"), CodeUserError)

	var b bytes.Buffer
	PlainRenderer{}.Render(&b, err)
	out := b.String()

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "Type: handlers.quotaError", lines[0])
	assert.Equal(t, "Code: 256", lines[1])
	assert.Equal(t, "Message: upload: quota exceeded", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "File: "), lines[3])
	assert.Contains(t, lines[3], "handler_test.go")
	assert.True(t, strings.HasPrefix(lines[4], "Line: "), lines[4])
	assert.NotEqual(t, "Line: 0", lines[4])
	assert.Equal(t, "Severity: ERROR", lines[5])
	assert.Equal(t, "Trace:", lines[6])
}

func TestPlainRenderer_NoStack(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	PlainRenderer{}.Render(&b, quotaError{})

	assert.Contains(t, b.String(), "Code: 0\n")
	assert.Contains(t, b.String(), "File: unknown\nLine: 0\n")
	assert.Contains(t, b.String(), "Severity: DEBUG\n")
}

func TestCLIRenderer(t *testing.T) {
	t.Parallel()

	err := errors.WithHint(WithCode(errors.New("cannot open <db>"), CodeCoreError), "check db.dsn")

	var b bytes.Buffer
	CLIRenderer{}.Render(&b, err)
	out := b.String()

	assert.Contains(t, out, "E_CORE_ERROR")
	assert.Contains(t, out, "cannot open <db>")
	assert.Contains(t, out, "check db.dsn")
	assert.Contains(t, out, "handler_test.go")
}

func TestLookupRenderer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cli", "plain"}, RendererNames())

	r, err := LookupRenderer("plain")
	require.NoError(t, err)
	assert.IsType(t, PlainRenderer{}, r)

	_, err = LookupRenderer("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown error renderer "html"`)
	assert.Contains(t, errors.FlattenHints(err), "cli, plain")

	_, err = NewErrorHandler("html", &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestErrorHandler_Handle(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	log := logger.New("app", logger.WithSink(sink))

	var out bytes.Buffer
	h, err := NewErrorHandler(RendererPlain, &out, log)
	require.NoError(t, err)

	h.Handle(nil)
	assert.Empty(t, out.String())
	assert.Empty(t, sink.records)

	h.Handle(WithCode(errors.New("config missing"), CodeParse))

	assert.Contains(t, out.String(), "Message: config missing")
	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, logger.Alert, rec.LevelName)
	assert.Equal(t, "config missing", rec.Message)
	require.Len(t, rec.Context, 1)
	assert.Contains(t, rec.Context[0], "Severity: ALERT")
}

func TestErrorHandler_HandleUncodedLogsDebug(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	var out bytes.Buffer
	h, err := NewErrorHandler(RendererCLI, &out, logger.New("app", logger.WithSink(sink)))
	require.NoError(t, err)

	h.Handle(errors.New("plain failure"))

	require.Len(t, sink.records, 1)
	assert.Equal(t, logger.Debug, sink.records[0].LevelName)
	assert.Contains(t, out.String(), "plain failure")
}

func TestErrorHandler_Recover(t *testing.T) {
	t.Parallel()

	h, err := NewErrorHandler(RendererPlain, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	assert.NoError(t, h.Recover(func() error { return nil }))

	sentinel := errors.New("returned")
	assert.Equal(t, sentinel, h.Recover(func() error { return sentinel }))

	err = h.Recover(func() error { panic("index out of range") })
	require.Error(t, err)
	assert.Equal(t, "panic: index out of range", err.Error())
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeError, code)

	cause := errors.New("nil map")
	err = h.Recover(func() error { panic(cause) })
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, logger.Critical, SeverityOf(err))
}
