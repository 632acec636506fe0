// Package beautify orchestrates the text/code transformation modes:
// pass input through with prose reflowed, convert prose to comments via
// the external comment tool, or strip prose and keep only the code.
// Results are memoized through a cache collaborator keyed by content
// fingerprint.
package beautify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codecomb/codecomb/cache"
	"github.com/codecomb/codecomb/segment"
)

// Mode selects the transformation.
type Mode int

const (
	// Identity returns the input unchanged.
	Identity Mode = iota
	// Comment reflows prose, unindents code and converts every prose
	// block into comments for the target language.
	Comment
	// Passthrough reflows prose and keeps code aligned as it was.
	Passthrough
	// Strip reflows and unindents, then keeps only the code lines.
	Strip
)

// ParseMode translates the short CLI mode codes. Unknown codes are a
// configuration error, reported before any transformation work starts.
func ParseMode(code string) (Mode, error) {
	switch code {
	case "":
		return Identity, nil
	case "c":
		return Comment, nil
	case "C":
		return Passthrough, nil
	case "q":
		return Strip, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want one of \"\", \"c\", \"C\", \"q\")", code)
}

// code is the short mode string embedded in cache fingerprints. It
// matches the historical key format: Passthrough shares the empty code
// with Identity, which never reaches the cache.
func (m Mode) code() string {
	switch m {
	case Comment:
		return "c"
	case Strip:
		return "q"
	}
	return ""
}

func (m Mode) String() string {
	switch m {
	case Identity:
		return "identity"
	case Comment:
		return "comment"
	case Passthrough:
		return "passthrough"
	case Strip:
		return "strip"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ErrConflictingOptions rejects requests asking to both comment the
// prose and remove it. The historical behavior silently picked one;
// rejecting the combination is deliberate.
var ErrConflictingOptions = errors.New("add comments and remove text are mutually exclusive")

// Options is the flag-style surface for callers that do not speak Mode.
// The zero value means Identity; setting both flags is an error.
type Options struct {
	AddComments bool
	RemoveText  bool
}

// Mode resolves the flags into a Mode.
func (o Options) Mode() (Mode, error) {
	switch {
	case o.AddComments && o.RemoveText:
		return 0, ErrConflictingOptions
	case o.AddComments:
		return Comment, nil
	case o.RemoveText:
		return Strip, nil
	}
	return Identity, nil
}

// Commenter is the external comment-toggle collaborator: given the
// blocks of a document and a language it returns the document rewritten
// with prose blocks commented. Failures surface to the caller as is;
// the core neither swallows nor retries them.
type Commenter interface {
	Comment(ctx context.Context, blocks []segment.Block, language string) (string, error)
}

// Beautifier ties the pure segmentation core to its two collaborators.
// It holds no other state and is safe for concurrent use as long as the
// collaborators are.
type Beautifier struct {
	Cache     cache.Cache
	Commenter Commenter

	// Width is the prose fill width; segment.DefaultWidth when 0.
	Width int
}

func New(store cache.Cache, commenter Commenter) *Beautifier {
	return &Beautifier{Cache: store, Commenter: commenter}
}

// Transform processes text according to mode. Identity requests return
// the input untouched without consulting the cache. All other modes are
// memoized by the fingerprint of (text, language, mode); a cache miss
// recomputes and a failing cache never fails the call.
func (b *Beautifier) Transform(ctx context.Context, text, language string, mode Mode) (string, error) {
	if mode == Identity {
		return text, nil
	}

	key := cache.Fingerprint(text, language, mode.code())
	if b.Cache != nil {
		if out, ok := b.Cache.Get(key); ok {
			return out, nil
		}
	}

	out, err := b.transform(ctx, text, language, mode)
	if err != nil {
		return "", err
	}

	if b.Cache != nil {
		b.Cache.Set(key, out)
	}
	return out, nil
}

// TransformOptions is Transform for flag-style callers.
func (b *Beautifier) TransformOptions(ctx context.Context, text, language string, opts Options) (string, error) {
	mode, err := opts.Mode()
	if err != nil {
		return "", err
	}
	return b.Transform(ctx, text, language, mode)
}

func (b *Beautifier) transform(ctx context.Context, text, language string, mode Mode) (string, error) {
	// Code loses its indent only when the prose around it is commented
	// out or removed. Otherwise it has to stay aligned with the input.
	unindent := mode == Comment || mode == Strip

	lines := segment.Cleanup(segment.SplitLines(text))
	labeled := segment.Reflow(segment.Classified(lines), segment.ReflowOptions{
		Unindent: unindent,
		Width:    b.Width,
	})

	switch mode {
	case Strip:
		var kept []string
		for _, ln := range labeled {
			if ln.Label == segment.Code {
				kept = append(kept, ln.Text)
			}
		}
		out := strings.Join(segment.Cleanup(kept), "\n")
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		return out, nil

	case Passthrough:
		parts := make([]string, len(labeled))
		for i, ln := range labeled {
			parts[i] = ln.Text
		}
		return strings.Join(parts, "\n"), nil

	case Comment:
		if b.Commenter == nil {
			return "", errors.New("no commenter configured")
		}
		out, err := b.Commenter.Comment(ctx, segment.Blocks(labeled), language)
		if err != nil {
			return "", fmt.Errorf("commenting as %s: %w", language, err)
		}
		return out, nil
	}

	return "", fmt.Errorf("unsupported mode %v", mode)
}
