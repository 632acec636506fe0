package comment

// vimNames maps public language identifiers to vim filetype names where
// the two vocabularies differ. Anything not listed passes through
// unchanged.
var vimNames = map[string]string{
	"assembly":     "asm",
	"bash":         "sh",
	"shell":        "sh",
	"zsh":          "sh",
	"c++":          "cpp",
	"clisp":        "lisp",
	"coffeescript": "coffee",
	"csharp":       "cs",
	"dotnet":       "cs",
	"delphi":       "pascal",
	"elisp":        "lisp",
	"golang":       "go",
	"javascript":   "javascript",
	"js":           "javascript",
	"node":         "javascript",
	"nodejs":       "javascript",
	"objective-c":  "objc",
	"mysql":        "sql",
	"postgres":     "sql",
	"psql":         "sql",
}

// VimName translates a language identifier into the name vim expects
// after "set ft=".
func VimName(language string) string {
	if name, ok := vimNames[language]; ok {
		return name
	}
	return language
}

// Languages without a block-comment form. Their prose blocks always
// take line-comment style, whatever their size.
var noBlockComment = map[string]bool{
	"ruby": true,
}
