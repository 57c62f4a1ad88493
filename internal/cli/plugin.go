package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/foldertint/internal/config"
	"github.com/jmylchreest/foldertint/internal/plugin/executor"
	"github.com/jmylchreest/foldertint/pkg/plugin"
)

func newPluginCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Talk to a foldertint-plugin binary",
		Long: `Query or drive a foldertint-plugin binary the way a file manager host does,
over the go-plugin RPC protocol.`,
	}

	cmd.AddCommand(newPluginInfoCmd(opts), newPluginExecCmd(opts))
	return cmd
}

func newPluginInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <plugin-binary>",
		Short: "Print the plugin's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := executor.New(args[0], executor.Options{Verbose: opts.verbose})
			if err != nil {
				return err
			}
			defer ex.Close()

			info, err := ex.Info(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
}

func newPluginExecCmd(opts *globalOptions) *cobra.Command {
	var (
		size       int
		view       string
		zoom       string
		noMetadata bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "exec <plugin-binary> <color>",
		Short: "Render an icon through the plugin",
		Long: `Launch the plugin and render one icon through it.

Without --size the plugin first resolves the icon size from --view/--zoom and
renders the nearest pre-rendered size class.`,
		Example: `  foldertint plugin exec ./foldertint-plugin '#3584e4' --size 24
  foldertint plugin exec ./foldertint-plugin '#3584e4' --view list-view --zoom 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := executor.New(args[0], executor.Options{
				Verbose: opts.verbose,
				Env:     pluginEnv(opts),
			})
			if err != nil {
				return err
			}
			defer ex.Close()

			ctx := cmd.Context()
			if size == 0 && !noMetadata {
				if err := checkView(opts.cfg.View.Table(), view); err != nil {
					return err
				}
			}
			if size == 0 {
				req := plugin.ResolveRequest{HasMetadata: !noMetadata, View: view, ZoomLevel: zoom}
				resolved, err := ex.ResolveIconSize(ctx, req)
				if err != nil {
					return err
				}
				opts.logger.Debug("resolved size", "pixels", resolved.Pixels, "size_class", resolved.SizeClass)
				size = resolved.SizeClass
			}

			resp, err := ex.RenderIcon(ctx, plugin.RenderRequest{Size: size, Color: args[1], Force: force})
			if err != nil {
				if kind := plugin.KindOf(err); kind != "" {
					return fmt.Errorf("%s: %w", kind, err)
				}
				return err
			}
			return printJSON(cmd, resp)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "size class to render (default: resolve from the view)")
	addViewFlags(cmd.Flags(), &view, &zoom, &noMetadata)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-render icons that already exist")

	return cmd
}

// pluginEnv passes flag overrides through to the plugin, which loads its own
// configuration from the same file and environment.
func pluginEnv(opts *globalOptions) []string {
	var env []string
	if opts.baseDir != "" {
		env = append(env, config.EnvPrefix+"BASE_DIR="+opts.baseDir)
	}
	if opts.configPath != "" {
		env = append(env, config.PathEnv+"="+opts.configPath)
	}
	if opts.verbose {
		env = append(env, config.EnvPrefix+"LOG_LEVEL=debug")
	}
	return env
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
