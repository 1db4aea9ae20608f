package card

import (
	"strings"
	"unicode"
)

// Measurer reports the rendered size of a string in the current font.
// *gg.Context satisfies it.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// WrapText breaks text into lines no wider than maxWidth, splitting on
// single spaces. Each line keeps the trailing space it was built with. A
// single word wider than maxWidth gets a line of its own.
func WrapText(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Split(text, " ") {
		test := line + word + " "
		if w, _ := m.MeasureString(test); w > maxWidth && line != "" {
			lines = append(lines, line)
			line = word + " "
			continue
		}
		line = test
	}
	return append(lines, line)
}

// Truncate shortens s to keep+"..." runes when it is longer than limit runes.
func Truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}

// stripUnsupported drops emoji and joiners the bundled Go fonts have no
// glyphs for, so they don't render as boxes.
func stripUnsupported(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\u200d', r == '\ufe0e', r == '\ufe0f':
			return -1
		case r >= 0x1f000:
			return -1
		case r >= 0x2600 && r <= 0x27bf:
			return -1
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, s))
}
