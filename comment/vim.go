// Package comment delegates comment insertion to vim and the
// NERDCommenter plugin. The core hands over block descriptors and a
// language; this package builds a vim script, applies it to the
// document in a scratch file and returns the rewritten content.
package comment

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/codecomb/codecomb/segment"
)

// Config holds the knobs for the external vim invocation. Home points
// at the sandboxed HOME carrying the NERDCommenter setup; when empty
// the process environment is used as is.
type Config struct {
	Vim     string        `env:"CODECOMB_VIM"         envDefault:"vim"`
	Home    string        `env:"CODECOMB_VIM_HOME"`
	Timeout time.Duration `env:"CODECOMB_VIM_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads the runner configuration from the environment.
func LoadConfig() (Config, error) {
	return env.ParseAs[Config]()
}

// ToolError reports a failed external tool invocation: a non-zero
// exit, a timeout, or unreadable output.
type ToolError struct {
	Cmd string
	Err error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("comment tool %s: %v", e.Cmd, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Runner invokes vim to rewrite a document. The zero value is not
// usable; construct it with NewRunner.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) *Runner {
	if cfg.Vim == "" {
		cfg.Vim = "vim"
	}
	return &Runner{cfg: cfg}
}

// Comment converts the prose blocks of a document into comments for
// the given language and returns the rewritten text. The document is
// the concatenation of all blocks, in order.
func (r *Runner) Comment(ctx context.Context, blocks []segment.Block, language string) (string, error) {
	script := Script(blocks, language)

	var lines []string
	for _, b := range blocks {
		lines = append(lines, strings.Split(strings.TrimSuffix(b.Text, "\n"), "\n")...)
	}

	log.Debug("running comment tool", "vim", r.cfg.Vim, "language", language, "blocks", len(blocks), "lines", len(lines))
	return r.run(ctx, script, lines)
}

// run applies script to lines through vim and returns the resulting
// file content. Both temp files are removed on every exit path.
func (r *Runner) run(ctx context.Context, script, lines []string) (string, error) {
	scriptFile, err := writeTemp("codecomb-*.vim", script)
	if err != nil {
		return "", &ToolError{Cmd: r.cfg.Vim, Err: err}
	}
	defer os.Remove(scriptFile) //nolint:errcheck

	textFile, err := writeTemp("codecomb-*.txt", lines)
	if err != nil {
		return "", &ToolError{Cmd: r.cfg.Vim, Err: err}
	}
	defer os.Remove(textFile) //nolint:errcheck

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	// vim insists on a tty; util-linux script provides one.
	cmd := exec.CommandContext(ctx, "script", "-q", "-c",
		fmt.Sprintf("%s -S %s %s", r.cfg.Vim, scriptFile, textFile), os.DevNull)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	cmd.Env = environ(r.cfg.Home)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &ToolError{Cmd: r.cfg.Vim, Err: err}
	}

	out, err := os.ReadFile(textFile)
	if err != nil {
		return "", &ToolError{Cmd: r.cfg.Vim, Err: err}
	}
	return string(out), nil
}

func writeTemp(pattern string, lines []string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(strings.Join(lines, "\n")); err != nil {
		f.Close()           //nolint:errcheck
		os.Remove(f.Name()) //nolint:errcheck
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name()) //nolint:errcheck
		return "", err
	}
	return f.Name(), nil
}

// environ returns the process environment, with HOME swapped for the
// sandboxed vim environment when one is configured.
func environ(home string) []string {
	if home == "" {
		return os.Environ()
	}
	var out []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "HOME=") {
			out = append(out, kv)
		}
	}
	return append(out, "HOME="+home)
}
