package util

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators, e.g. 48000 -> "48,000".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatBytes renders a byte count using the same units ParseSize accepts.
func FormatBytes(n int64) string {
	switch {
	case n >= 1024*1024*1024:
		return printer.Sprintf("%.1fGB", float64(n)/(1024*1024*1024))
	case n >= 1024*1024:
		return printer.Sprintf("%.1fMB", float64(n)/(1024*1024))
	case n >= 1024:
		return printer.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return printer.Sprintf("%dB", n)
	}
}

// FormatClock renders d as m:ss, rounding down to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
