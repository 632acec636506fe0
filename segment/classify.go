package segment

import (
	"regexp"
	"strings"
)

// Working labels used only while classifying. Neither value may survive
// to the returned slice.
const (
	undefined Label = -1 // blank line, ownership not yet decided
	absorbed  Label = -2 // blank line claimed by adjacent code
)

// Lines like "* item" or "1. item" start with enough spaces to look
// like code but are list markup; whitelist them as text.
var listMarker = regexp.MustCompile(`^[0-9]+\.`)

func initialLabel(line string) Label {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return undefined
	}
	if strings.HasPrefix(trimmed, "* ") || listMarker.MatchString(trimmed) {
		return Text
	}
	if strings.HasPrefix(line, "   ") {
		return Code
	}
	return Text
}

// Classify labels every line as Text or Code. A line with three or more
// leading spaces is code, a non-blank line without them is text, and
// blank lines are repaired in two passes: first blanks touching code
// are absorbed into the code run, then text spreads through the
// remaining blanks until a fixed point. Whatever is still undecided
// becomes code. The result has the same length as lines and is
// deterministic for identical input.
func Classify(lines []string) []Label {
	labels := make([]Label, len(lines))
	for i, line := range lines {
		labels[i] = initialLabel(line)
	}

	absorbBlanks(labels)
	propagateText(labels)

	for i, l := range labels {
		if l == undefined {
			labels[i] = Code
		}
	}
	return labels
}

// absorbBlanks attaches blank lines adjacent to code to the code run.
// The absorbed marker keeps a claimed blank from seeding further
// absorption in the opposite direction and from being claimed by
// propagateText afterwards.
func absorbBlanks(labels []Label) {
	for i := 0; i < len(labels)-1; i++ {
		if labels[i] == Code && labels[i+1] == undefined {
			labels[i+1] = absorbed
		}
	}
	for i := len(labels) - 2; i >= 0; i-- {
		if labels[i] == undefined && labels[i+1] == Code {
			labels[i] = absorbed
		}
	}
	for i, l := range labels {
		if l == absorbed {
			labels[i] = Code
		}
	}
}

// propagateText grows text labels outward through chains of undecided
// blanks, scanning forward and backward until a full pass changes
// nothing. Every pass resolves at least one line, so the loop is
// bounded by the document length.
func propagateText(labels []Label) {
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(labels)-1; i++ {
			if labels[i] == Text && labels[i+1] == undefined {
				labels[i+1] = Text
				changed = true
			}
		}
		for i := len(labels) - 2; i >= 0; i-- {
			if labels[i] == undefined && labels[i+1] == Text {
				labels[i] = Text
				changed = true
			}
		}
	}
}
