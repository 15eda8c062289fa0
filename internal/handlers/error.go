package handlers

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type withCode struct {
	cause error
	code  Code
}

// WithCode annotates err with code. A nil err stays nil.
func WithCode(err error, code Code) error {
	if err == nil {
		return nil
	}
	return &withCode{cause: err, code: code}
}

// CodeOf returns the outermost code attached to err.
func CodeOf(err error) (Code, bool) {
	var wc *withCode
	if errors.As(err, &wc) {
		return wc.code, true
	}
	return 0, false
}

// SeverityOf is the log level for err: the severity of its code, or DEBUG
// when it has none.
func SeverityOf(err error) string {
	code, _ := CodeOf(err)
	return code.Severity()
}

func (e *withCode) Error() string { return e.cause.Error() }
func (e *withCode) Cause() error  { return e.cause }
func (e *withCode) Unwrap() error { return e.cause }

func (e *withCode) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

func (e *withCode) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("code: %s", e.code)
	}
	return e.cause
}
