package segment

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	// DefaultShift is the indent width stripped from code lines when
	// unindenting, matching the three-space threshold Classify uses.
	DefaultShift = 3

	// DefaultWidth is the conventional fill width for wrapped prose.
	DefaultWidth = 70
)

// ReflowOptions controls how Reflow treats code indentation and prose
// width. The zero value keeps code aligned (one compensating space is
// added to every non-empty code line) and wraps prose at DefaultWidth.
type ReflowOptions struct {
	Unindent bool // strip leading indent from code lines
	Shift    int  // spaces stripped when unindenting; DefaultShift when 0
	Width    int  // prose fill width; DefaultWidth when 0
}

// Reflow word-wraps text lines and adjusts the indentation of code
// lines. A blank text line yields exactly one blank output line; a long
// text line may yield several wrapped lines, so the output is not 1:1
// with the input. Code lines pass through untouched except for the
// indent adjustment.
func Reflow(lines []Line, opts ReflowOptions) []Line {
	shift := opts.Shift
	if shift == 0 {
		shift = DefaultShift
	}
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}

	out := make([]Line, 0, len(lines))
	for _, ln := range lines {
		if ln.Label == Code {
			out = append(out, Line{Code, shiftCode(ln.Text, opts.Unindent, shift)})
			continue
		}
		trimmed := strings.TrimSpace(ln.Text)
		if trimmed == "" {
			out = append(out, Line{Text, ""})
			continue
		}
		for _, wrapped := range strings.Split(wordwrap.String(trimmed, width), "\n") {
			out = append(out, Line{Text, wrapped})
		}
	}
	return out
}

// shiftCode strips up to shift leading spaces when unindenting, or
// re-adds the single space the pipeline removes elsewhere when not.
// Lines with less than shift leading spaces are left alone.
func shiftCode(line string, unindent bool, shift int) string {
	if !unindent {
		if line == "" {
			return line
		}
		return " " + line
	}
	if strings.HasPrefix(line, strings.Repeat(" ", shift)) {
		return line[shift:]
	}
	return line
}
