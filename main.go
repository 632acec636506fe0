package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/codecomb/codecomb/beautify"
	"github.com/codecomb/codecomb/cache"
	"github.com/codecomb/codecomb/comment"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	width      uint
	noCache    bool
	timeout    time.Duration

	rootCmd = &cobra.Command{
		Use:   "codecomb FILETYPE [MODE]",
		Short: "Comb mixed prose and code into tidy output",
		Long: paragraph(fmt.Sprintf(
			"\nSplit a stream of prose and indented code read from stdin into text and code runs, then %s the prose, turn it into %s for the given filetype, or drop it and keep the code.",
			keyword("reflow"), keyword("comments"),
		)),
		Example:          paragraph("curl -s cheat.sh/tar | codecomb sh c\ncodecomb python q < annotated.txt"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.RangeArgs(1, 2),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	width = viper.GetUint("width")
	noCache = viper.GetBool("no-cache")
	timeout = viper.GetDuration("timeout")

	// Wrap prose to the terminal when it is narrower than the usual
	// fill width. Piped output keeps the conventional 70 columns.
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if isTerminal && width == 0 && !cmd.Flags().Changed("width") {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < 70 {
			width = uint(w)
		}
	}
	if width > 120 {
		width = 120
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, err
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	modeCode := ""
	if len(args) > 1 {
		modeCode = args[1]
	}
	mode, err := beautify.ParseMode(modeCode)
	if err != nil {
		return err
	}

	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if !yes {
		return errors.New("no input: pipe or redirect text into codecomb")
	}

	return executeCLI(cmd.Context(), args[0], mode, os.Stdin, os.Stdout)
}

func executeCLI(ctx context.Context, language string, mode beautify.Mode, r io.Reader, w io.Writer) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	runnerCfg, err := comment.LoadConfig()
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if timeout > 0 {
		runnerCfg.Timeout = timeout
	}

	b := beautify.New(resultCache(), comment.NewRunner(runnerCfg))
	b.Width = int(width)

	out, err := b.Transform(ctx, string(in), language, mode)
	if err != nil {
		return err
	}

	fmt.Fprint(w, out) //nolint:errcheck
	return nil
}

// resultCache picks the memoization store: the user cache dir, or
// nothing when disabled or unavailable.
func resultCache() cache.Cache {
	if noCache {
		return cache.Null{}
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		log.Warn("result cache disabled", "error", err)
		return cache.Null{}
	}
	return cache.NewFileCache(dir)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap prose at width")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "how long the external comment tool may run")

	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("no-cache", rootCmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))

	viper.SetDefault("width", 0)
	viper.SetDefault("no-cache", false)
	viper.SetDefault("timeout", time.Duration(0))

	rootCmd.AddCommand(configCmd, manCmd)
}
