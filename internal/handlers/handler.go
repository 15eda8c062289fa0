package handlers

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/logger"
)

// ErrorHandler renders failed commands and records them in the application
// log.
type ErrorHandler struct {
	renderer Renderer
	out      io.Writer
	log      *logger.Logger
}

// NewErrorHandler returns a handler writing with the named renderer to out.
// log may be nil.
func NewErrorHandler(renderer string, out io.Writer, log *logger.Logger) (*ErrorHandler, error) {
	r, err := LookupRenderer(renderer)
	if err != nil {
		return nil, err
	}
	return &ErrorHandler{renderer: r, out: out, log: log}, nil
}

// Handle renders err to the terminal and logs its plain rendering at the
// severity derived from its code.
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	h.renderer.Render(h.out, err)
	if h.log == nil {
		return
	}
	var plain strings.Builder
	PlainRenderer{}.Render(&plain, err)
	h.log.Log(SeverityOf(err), err.Error(), plain.String())
}

// Recover runs fn and turns a panic into an error coded CodeError.
func (h *ErrorHandler) Recover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = WithCode(errors.WithMessage(perr, "panic"), CodeError)
				return
			}
			err = WithCode(errors.Newf("panic: %v", r), CodeError)
		}
	}()
	return fn()
}
