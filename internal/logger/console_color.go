package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for outcome counts.
// Green: copied, Yellow: skipped, Red: failed, Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
	}
}

// FormatOutcomeCounts renders "copied: N, skipped: N, failed: N". With
// enableColor, non-zero counts are colored by kind; a zero count stays plain.
func FormatOutcomeCounts(copied, skipped, failed int, enableColor bool) string {
	scheme := newColorScheme()
	parts := []string{
		formatCount("copied", copied, scheme.success, scheme, enableColor),
		formatCount("skipped", skipped, scheme.warn, scheme, enableColor),
		formatCount("failed", failed, scheme.fail, scheme, enableColor),
	}
	return strings.Join(parts, ", ")
}

func formatCount(label string, n int, c *color.Color, scheme *colorScheme, enableColor bool) string {
	if !enableColor {
		return fmt.Sprintf("%s: %d", label, n)
	}
	value := fmt.Sprintf("%d", n)
	if n > 0 {
		value = c.Sprint(value)
	}
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), value)
}
