// Package cli provides the command-line interface for foldertint.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/foldertint/internal/config"
	"github.com/jmylchreest/foldertint/internal/logging"
	"github.com/jmylchreest/foldertint/internal/recolor"
	"github.com/jmylchreest/foldertint/internal/version"
	"github.com/jmylchreest/foldertint/internal/viewsize"
)

// globalOptions holds the persistent flags and what PersistentPreRunE builds
// from them.
type globalOptions struct {
	configPath string
	baseDir    string
	verbose    bool
	quiet      bool

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the foldertint command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "foldertint",
		Short: "Recolour folder icons",
		Long: `foldertint renders folder icons in a chosen colour.

Base icons authored in a reference colour (yellow by default) are shifted in
hue, saturation and lightness to match the target colour, then written to
<base>/places/<size>/<colour>.png where a file manager can pick them up.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	root.SetVersionTemplate(version.String("foldertint") + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/foldertint/config.toml)")
	flags.StringVar(&opts.baseDir, "base-dir", "", "icon theme directory holding copy/ and places/")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")

	root.AddCommand(
		newRenderCmd(opts),
		newResolveSizeCmd(opts),
		newAssetsCmd(opts),
		newPluginCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load resolves configuration and the logger for the running command.
func (o *globalOptions) load(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		// Without a config dir only defaults and env apply.
		path, _ = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.baseDir != "" {
		cfg.BaseDir = o.baseDir
	}
	o.cfg = cfg

	o.logger = logging.New(logging.Options{
		Name:    "foldertint",
		Level:   cfg.LogLevel,
		Verbose: o.verbose,
		Quiet:   o.quiet,
		Output:  cmd.ErrOrStderr(),
	})
	o.logger.Debug("configuration loaded", "path", path, "base_dir", cfg.BaseDir)
	return nil
}

func (o *globalOptions) recolorer() (*recolor.Recolorer, error) {
	return recolor.New(recolor.Options{
		BaseDir:   o.cfg.BaseDir,
		Reference: o.cfg.ReferenceColor,
		Logger:    o.logger,
	})
}

func (o *globalOptions) resolver() *viewsize.Resolver {
	return viewsize.NewResolver(o.cfg.View, o.cfg.View.Table(), o.logger)
}

// printf writes to the command's output unless --quiet is set.
func (o *globalOptions) printf(cmd *cobra.Command, format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String("foldertint"))
		},
	}
}
