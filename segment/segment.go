// Package segment partitions a mixed stream of free-form prose and
// literally-indented code into alternating runs of text and code.
//
// The pipeline has four stages: Cleanup normalizes blank lines, Classify
// labels every line as text or code, Reflow word-wraps prose and adjusts
// code indentation, and Blocks groups the labeled lines into maximal
// same-label runs. All functions are pure and safe for concurrent use.
package segment

import "strings"

// Label classifies a line as prose or code.
type Label int

const (
	Text Label = iota
	Code
)

func (l Label) String() string {
	if l == Code {
		return "code"
	}
	return "text"
}

// Line pairs a label with one line of content.
type Line struct {
	Label Label
	Text  string
}

// Block is a maximal run of consecutive lines sharing one label.
// Start and End are 1-indexed, inclusive line numbers within the
// document the block was cut from.
type Block struct {
	Label Label
	Text  string // lines joined with newlines, trailing newline included
	Start int
	End   int
}

// SplitLines splits text into lines, dropping the trailing newline of
// the last line. The empty string yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Classified labels every line and pairs each with its content.
func Classified(lines []string) []Line {
	labels := Classify(lines)
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = Line{Label: labels[i], Text: line}
	}
	return out
}

// Blocks groups consecutive same-label lines into maximal blocks,
// preserving document order. Adjacent blocks never share a label.
func Blocks(lines []Line) []Block {
	var blocks []Block
	for i := 0; i < len(lines); {
		j := i
		var sb strings.Builder
		for j < len(lines) && lines[j].Label == lines[i].Label {
			sb.WriteString(lines[j].Text)
			sb.WriteByte('\n')
			j++
		}
		blocks = append(blocks, Block{
			Label: lines[i].Label,
			Text:  sb.String(),
			Start: i + 1,
			End:   j,
		})
		i = j
	}
	return blocks
}

// Split partitions text into blocks of prose and code. When reflow is
// true the lines pass through Reflow with the given options first, so a
// long prose line may span several output lines. Unlike the beautify
// transformation modes, Split does not clean the input up; callers get
// blocks for exactly the lines they passed in.
func Split(text string, reflow bool, opts ReflowOptions) []Block {
	lines := Classified(SplitLines(text))
	if reflow {
		lines = Reflow(lines, opts)
	}
	return Blocks(lines)
}
