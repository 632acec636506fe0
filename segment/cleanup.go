package segment

import "strings"

func blank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Cleanup removes blank lines from the beginning and end of lines and
// collapses every internal run of blank lines to a single empty line.
// Whitespace-only lines count as blank and come out empty. Cleanup is
// idempotent and never fails; empty input yields empty output.
func Cleanup(lines []string) []string {
	start := 0
	for start < len(lines) && blank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && blank(lines[end-1]) {
		end--
	}

	out := make([]string, 0, end-start)
	inRun := false
	for _, line := range lines[start:end] {
		if blank(line) {
			if !inRun {
				out = append(out, "")
			}
			inRun = true
			continue
		}
		inRun = false
		out = append(out, line)
	}
	return out
}
