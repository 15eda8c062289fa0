package logger

import "strings"

// Level names, in ascending order of severity.
const (
	Debug     = "DEBUG"
	Info      = "INFO"
	Notice    = "NOTICE"
	Warning   = "WARNING"
	Error     = "ERROR"
	Critical  = "CRITICAL"
	Alert     = "ALERT"
	Emergency = "EMERGENCY"
)

// ranks follows the syslog-derived values of RFC 5424 style loggers.
var ranks = map[string]int{
	Debug:     100,
	Info:      200,
	Notice:    250,
	Warning:   300,
	Error:     400,
	Critical:  500,
	Alert:     550,
	Emergency: 600,
}

var ordered = []string{Debug, Info, Notice, Warning, Error, Critical, Alert, Emergency}

// Rank returns the numeric rank for a level name, case-insensitively. Unknown
// names report false and rank 0.
func Rank(name string) (int, bool) {
	r, ok := ranks[strings.ToUpper(name)]
	return r, ok
}

// Levels returns every known level name in ascending order.
func Levels() []string {
	return append([]string(nil), ordered...)
}
