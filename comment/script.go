package comment

import (
	"fmt"

	"github.com/codecomb/codecomb/segment"
)

// Script builds the vim command list that turns every prose block into
// comments, leaving code blocks untouched. Prose blocks of at least two
// lines take the multi-line "sexy" style; single-line blocks and
// languages without a block-comment form take plain line comments.
// Every block is force-uncommented before it is commented, so the
// output is the same whether or not the input was already commented.
//
// Blocks are processed bottom-up: the sexy style inserts delimiter
// lines, and working from the end keeps the line ranges of blocks
// earlier in the file valid while the script runs.
func Script(blocks []segment.Block, language string) []string {
	script := []string{"set ft=" + VimName(language)}
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if b.Label != segment.Text {
			continue
		}
		style := "sexy"
		if b.End-b.Start < 1 || noBlockComment[language] {
			style = "comment"
		}
		script = append(script,
			fmt.Sprintf("%d,%d call NERDComment(1, 'uncomment')", b.Start, b.End),
			fmt.Sprintf("%d,%d call NERDComment(1, '%s')", b.Start, b.End, style),
		)
	}
	return append(script, "wq")
}
