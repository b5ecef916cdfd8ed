package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	ansiReset = "\033[0m"
	ansiBlue  = "\033[34m"
)

// levelTags abbreviates zerolog levels; color is the ANSI SGR code.
var levelTags = map[string]struct{ tag, color string }{
	"trace": {"TRC", "90"},
	"debug": {"DBG", "36"},
	"info":  {"INF", "32"},
	"warn":  {"WRN", "33"},
	"error": {"ERR", "31"},
	"fatal": {"FTL", "35"},
	"panic": {"PNC", "35"},
}

// consoleWriter renders "15:04:05 [FEE][INF] message key:value". The
// service prefix is the first three letters of the service name.
func consoleWriter(w io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	prefix := ""
	if len(service) >= 3 && service != "default" {
		prefix = "[" + strings.ToUpper(service[:3]) + "]"
		if !noColor {
			prefix = ansiBlue + prefix + ansiReset
		}
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			return prefix + levelTag(fmt.Sprint(i), noColor)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprint(i) + ":"
		},
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}

func levelTag(level string, noColor bool) string {
	lt, ok := levelTags[level]
	if !ok {
		return "[" + strings.ToUpper(level) + "]"
	}
	if noColor {
		return "[" + lt.tag + "]"
	}
	return "\033[" + lt.color + "m[" + lt.tag + "]" + ansiReset
}
