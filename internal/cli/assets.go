package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/foldertint/internal/assets"
	"github.com/jmylchreest/foldertint/internal/colour"
	"github.com/jmylchreest/foldertint/internal/icon"
)

func newAssetsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage base icon assets",
		Long: `Inspect and install the base folder icons that colours are rendered from.

Base icons live in <base>/copy/<size>.png and are authored in the reference
colour. Rendered icons live in <base>/places/<size>/.`,
	}

	cmd.AddCommand(
		newAssetsListCmd(opts),
		newAssetsImportCmd(opts),
		newAssetsScaleCmd(opts),
		newAssetsGenerateCmd(opts),
	)
	return cmd
}

func newAssetsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show base and rendered icons per size",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := assets.NewManager(icon.NewLayout(opts.cfg.BaseDir), opts.logger)
			statuses, err := m.Status()
			if err != nil {
				return err
			}

			table := NewTable("SIZE", "BASE", "RENDERED", "PATH")
			for _, s := range statuses {
				base := "missing"
				if s.BasePresent {
					base = "present"
				}
				table.AddRow(s.Size.String(), base, fmt.Sprint(s.RenderedKeys), s.BasePath)
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
}

func newAssetsImportCmd(opts *globalOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "import <archive|https-url>",
		Short: "Install base icons from an icon pack",
		Long: `Install base icons from an icon-pack archive.

Supported archives are .tar.gz, .tar.xz, .tar.bz2 and .zip, given as a local
path or an https URL. Entries named <size>.png, in any directory, are installed
for each supported size (16, 22, 24, 32, 48); everything else is ignored.

Downloaded packs are cached and reused; pass --refresh to download again.`,
		Example: `  foldertint assets import ./yellow-folders.tar.xz
  foldertint assets import https://example.com/packs/folders.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := assets.NewManager(icon.NewLayout(opts.cfg.BaseDir), opts.logger)
			m.SetDownloadCache("", refresh)
			installed, err := m.Import(cmd.Context(), args[0])
			for _, in := range installed {
				opts.printf(cmd, "installed %-3s %s (from %s)\n", in.Size, in.Path, in.Source)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "download the pack again even if it is cached")
	return cmd
}

func newAssetsScaleCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scale <master-image>",
		Short: "Install base icons by scaling one master image",
		Long: `Install a base icon for every size class by resampling a single large
master image (PNG, JPEG, GIF or WebP). The master should already be in the
reference colour.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := assets.NewManager(icon.NewLayout(opts.cfg.BaseDir), opts.logger)
			installed, err := m.Scale(args[0])
			for _, in := range installed {
				opts.printf(cmd, "installed %-3s %s\n", in.Size, in.Path)
			}
			return err
		},
	}
}

func newAssetsGenerateCmd(opts *globalOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Install plain placeholder base icons",
		Long: `Draw a simple folder shape in the reference colour for every size class.
Useful when no icon pack is at hand. Existing base icons are kept unless
--overwrite is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := colour.Parse(opts.cfg.ReferenceColor)
			if err != nil {
				return err
			}
			m := assets.NewManager(icon.NewLayout(opts.cfg.BaseDir), opts.logger)
			installed, err := m.Generate(ref, overwrite)
			for _, in := range installed {
				opts.printf(cmd, "generated %-3s %s\n", in.Size, in.Path)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing base icons")
	return cmd
}
