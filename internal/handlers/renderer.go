package handlers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gookit/color"
)

// Renderer writes a human readable description of err.
type Renderer interface {
	Render(w io.Writer, err error)
}

const (
	RendererCLI   = "cli"
	RendererPlain = "plain"
)

var renderers = map[string]Renderer{
	RendererCLI:   CLIRenderer{},
	RendererPlain: PlainRenderer{},
}

// RendererNames lists the accepted handlers.renderer values.
func RendererNames() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupRenderer returns the renderer registered under name.
func LookupRenderer(name string) (Renderer, error) {
	r, ok := renderers[name]
	if !ok {
		return nil, errors.WithHintf(
			errors.Newf("unknown error renderer %q", name),
			"valid renderers: %s", strings.Join(RendererNames(), ", "))
	}
	return r, nil
}

// CLIRenderer prints a coloured banner followed by the full error dump with
// stack traces.
type CLIRenderer struct{}

// Error text is styled directly; tag parsing would eat "<...>" in messages.
var messageStyle = color.Style{color.FgRed, color.OpBold}

func (CLIRenderer) Render(w io.Writer, err error) {
	color.Fprintf(w, "\n<error> %s </>", typeName(err))
	if code, ok := CodeOf(err); ok {
		color.Fprintf(w, " <fg=yellow>%s</>", code)
	}
	fmt.Fprintf(w, "\n\n%s\n\n", messageStyle.Sprint(err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		color.Fprint(w, "<comment>hint:</> ")
		fmt.Fprintln(w, hint)
	}
	fmt.Fprintf(w, "%+v\n", err)
}

// PlainRenderer prints one "Key: value" line per field. Its output is what
// the error handler logs.
type PlainRenderer struct{}

func (PlainRenderer) Render(w io.Writer, err error) {
	code, _ := CodeOf(err)
	file, line, _, ok := errors.GetOneLineSource(err)
	if !ok {
		file, line = "unknown", 0
	}
	fmt.Fprintf(w, "Type: %s\n", typeName(err))
	fmt.Fprintf(w, "Code: %d\n", int(code))
	fmt.Fprintf(w, "Message: %s\n", err.Error())
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Line: %d\n", line)
	fmt.Fprintf(w, "Severity: %s\n", code.Severity())
	fmt.Fprintf(w, "Trace:\n%+v\n", err)
}

func typeName(err error) string {
	return fmt.Sprintf("%T", errors.UnwrapAll(err))
}
