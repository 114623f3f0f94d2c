package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fcat/pkg/clipboard"
	"fcat/pkg/combine"
	"fcat/pkg/config"
	"fcat/pkg/ignore"
	"fcat/pkg/logging"
	"fcat/pkg/output"
	"fcat/pkg/version"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// newCopier is swapped out in tests.
var newCopier = func() output.Copier { return clipboard.New() }

type rootOptions struct {
	output     string
	clipboard  bool
	ignore     []string
	ignoreFile string
	gitignore  bool
	configPath string
	verbose    bool
	noColor    bool
}

// NewRootCmd builds the fcat command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "fcat [flags] PATH... [-- IGNORE_PATTERN...]",
		Short: "Concatenate the text files under one or more paths",
		Long: `fcat walks the given files and directories, skips binaries, archives, media and
anything matching an ignore pattern, and concatenates the remaining text files
into one output, each headed by "==== <path> ====".

Ignore patterns are globs (*, ?, [...], **). A pattern without a slash matches
at any depth; a plain name such as "target" also excludes everything below a
directory of that name. Arguments after "--" are treated as ignore patterns.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			color.NoColor = opts.noColor || !isatty.IsTerminal(os.Stderr.Fd())
			if err := logging.Setup(opts.verbose, "fcat", version.Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Save output to `FILE` (bare -o writes paste.txt)")
	flags.Lookup("output").NoOptDefVal = output.DefaultFile
	flags.BoolVarP(&opts.clipboard, "clipboard", "c", false, "Copy output to the system clipboard")
	flags.StringArrayVarP(&opts.ignore, "ignore", "i", nil, "Ignore `PATTERN` (repeatable)")
	flags.StringVar(&opts.ignoreFile, "ignore-file", ignore.LocalPatternFile, "Read extra ignore patterns from `FILE` if it exists")
	flags.BoolVar(&opts.gitignore, "gitignore", false, "Also honour each root directory's .gitignore")
	flags.StringVar(&opts.configPath, "config", config.DefaultFile, "Read settings from YAML `FILE` if it exists")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured status messages")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(attachOutputValue(os.Args[1:]))
	return rootCmd.Execute()
}

// attachOutputValue rewrites "-o FILE" and "--output FILE" as "-o=FILE" so the
// optional flag value may follow after a space. A following argument that
// starts with '-' is left alone, leaving -o bare. Arguments after "--" are
// not touched.
func attachOutputValue(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if (arg == "-o" || arg == "--output") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, arg+"="+args[i+1])
			i++
			continue
		}
		out = append(out, arg)
	}
	return out
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	logger := logging.Logger
	paths, dashPatterns := splitArgs(args, cmd.ArgsLenAtDash())
	if len(paths) == 0 {
		return errors.New("requires at least one path")
	}

	flags := cmd.Flags()
	cfgFile, err := config.Load(opts.configPath, !flags.Changed("config"))
	if err != nil {
		return err
	}

	outputFile := opts.output
	if !flags.Changed("output") && cfgFile.Output != "" {
		outputFile = cfgFile.Output
	}
	copyToClipboard := opts.clipboard
	if !flags.Changed("clipboard") {
		copyToClipboard = cfgFile.Clipboard
	}
	gitignore := opts.gitignore
	if !flags.Changed("gitignore") {
		gitignore = cfgFile.Gitignore
	}
	ignoreFile := opts.ignoreFile
	if !flags.Changed("ignore-file") && cfgFile.IgnoreFile != "" {
		ignoreFile = cfgFile.IgnoreFile
	}

	patterns, err := combine.CollectIgnorePatterns(combine.PatternSources{
		Config:     cfgFile.Ignore,
		IgnoreFile: ignoreFile,
		Flags:      append(append([]string(nil), opts.ignore...), dashPatterns...),
	}, logger)
	if err != nil {
		return err
	}

	result, err := combine.RunCombine(&combine.Arguments{
		Paths:          paths,
		IgnorePatterns: patterns,
		Gitignore:      gitignore,
	}, logger)
	if err != nil {
		return err
	}

	delivery, err := output.Deliver(cmd.Context(), result.Output, output.Target{
		File:      outputFile,
		Clipboard: copyToClipboard,
		Stdout:    cmd.OutOrStdout(),
	}, newCopier(), logger)
	if err != nil {
		return err
	}

	printStatus(cmd.ErrOrStderr(), delivery, result)
	return nil
}

// splitArgs separates root paths from the ignore patterns given after "--".
func splitArgs(args []string, dash int) (paths, patterns []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func printStatus(w io.Writer, d output.Delivery, result combine.Result) {
	ok := color.New(color.FgGreen)
	if d.File != "" {
		ok.Fprintf(w, "Saved %d files (%d bytes) to %s\n", len(result.Files), d.Bytes, d.File)
	}
	if d.Clipboard.Name != "" {
		ok.Fprintf(w, "Copied %d files (%d bytes) to clipboard via %s\n", len(result.Files), d.Bytes, d.Clipboard.Name)
	}
	if n := len(multierr.Errors(result.Skipped)); n > 0 {
		color.New(color.FgYellow).Fprintf(w, "Skipped %d unreadable files\n", n)
	}
}
