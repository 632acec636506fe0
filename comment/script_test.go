package comment

import (
	"errors"
	"reflect"
	"testing"

	"github.com/codecomb/codecomb/segment"
)

func TestScript(t *testing.T) {
	blocks := []segment.Block{
		{Label: segment.Text, Text: "intro\nmore\n", Start: 1, End: 2},
		{Label: segment.Code, Text: "x = 1\ny = 2\nz = 3\n", Start: 3, End: 5},
		{Label: segment.Text, Text: "outro\n", Start: 6, End: 6},
	}

	want := []string{
		"set ft=go",
		"6,6 call NERDComment(1, 'uncomment')",
		"6,6 call NERDComment(1, 'comment')",
		"1,2 call NERDComment(1, 'uncomment')",
		"1,2 call NERDComment(1, 'sexy')",
		"wq",
	}

	got := Script(blocks, "golang")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Script() = %q, want %q", got, want)
	}
}

func TestScriptLineCommentsOnly(t *testing.T) {
	blocks := []segment.Block{
		{Label: segment.Text, Text: "a\nb\nc\n", Start: 1, End: 3},
	}

	// ruby has no block-comment form, so even a multi-line prose block
	// takes line comments.
	got := Script(blocks, "ruby")
	want := []string{
		"set ft=ruby",
		"1,3 call NERDComment(1, 'uncomment')",
		"1,3 call NERDComment(1, 'comment')",
		"wq",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Script() = %q, want %q", got, want)
	}
}

func TestScriptCodeOnly(t *testing.T) {
	blocks := []segment.Block{
		{Label: segment.Code, Text: "x\n", Start: 1, End: 1},
	}

	got := Script(blocks, "python")
	want := []string{"set ft=python", "wq"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Script() = %q, want %q", got, want)
	}
}

func TestVimName(t *testing.T) {
	tt := []struct {
		in, want string
	}{
		{"bash", "sh"},
		{"golang", "go"},
		{"c++", "cpp"},
		{"python", "python"},
		{"", ""},
	}

	for _, tc := range tt {
		if got := VimName(tc.in); got != tc.want {
			t.Errorf("VimName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToolError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &ToolError{Cmd: "vim", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ToolError should unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("ToolError message should not be empty")
	}
}
