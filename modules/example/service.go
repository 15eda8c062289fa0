package example

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Service is the example service.
type Service struct{}

func NewService() *Service { return &Service{} }

// Capitalize upper-cases the first letter of every whitespace-separated word
// and leaves the rest of each word untouched.
func (*Service) Capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case unicode.IsSpace(r):
			atStart = true
		case atStart:
			r = unicode.ToUpper(r)
			atStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
