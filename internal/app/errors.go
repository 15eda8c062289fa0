package app

import "github.com/cockroachdb/errors"

var (
	// ErrUsage marks errors caused by bad flags, arguments or command names.
	ErrUsage = errors.New("usage error")
	// ErrRendered marks command failures already reported by the error
	// handler.
	ErrRendered = errors.New("error already rendered")
)
