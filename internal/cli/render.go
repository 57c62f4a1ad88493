package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/foldertint/internal/colour"
	"github.com/jmylchreest/foldertint/internal/icon"
	"github.com/jmylchreest/foldertint/internal/recolor"
	"github.com/jmylchreest/foldertint/internal/viewsize"
)

type renderResult struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Path   string `json:"path"`
	Cached bool   `json:"cached"`
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		sizes  []int
		force  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "render <color>",
		Short: "Render folder icons in a colour",
		Long: `Render the base folder icon in the given colour.

Without --size every size class (16, 22, 24, 32, 48) is rendered. Icons that
already exist are reused unless --force is given.

Colours may be written as #rgb, #rrggbb, #rrggbbaa, #rrrrggggbbbb or rgb(r,g,b).`,
		Example: `  foldertint render '#3584e4'
  foldertint render 'rgb(46,194,126)' --size 24 --size 48
  foldertint render '#e01b24' --force --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := opts.recolorer()
			if err != nil {
				return err
			}

			var results []recolor.Result
			if len(sizes) == 0 {
				results, err = rec.RenderAll(cmd.Context(), args[0], force)
				if err != nil {
					return err
				}
			} else {
				for _, size := range sizes {
					res, err := rec.Render(cmd.Context(), recolor.Request{Size: size, Color: args[0], Force: force})
					if err != nil {
						return err
					}
					results = append(results, res)
				}
			}

			if asJSON {
				out := make([]renderResult, 0, len(results))
				for _, r := range results {
					out = append(out, renderResult{Size: int(r.Size), Color: r.Key, Path: r.Path, Cached: r.Cached})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(results) > 0 && isTerminal(cmd.OutOrStdout()) && !opts.quiet {
				target := colour.MustParse(results[0].Key)
				opts.printf(cmd, "%s  %s\n", colour.Swatch(target, target.Hex(), 9), results[0].Deltas)
			}
			for _, r := range results {
				state := "rendered"
				if r.Cached {
					state = "cached"
				}
				opts.printf(cmd, "%-3d %-8s %s\n", int(r.Size), state, r.Path)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&sizes, "size", "s", nil, "size class to render (repeatable)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-render icons that already exist")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func newResolveSizeCmd(opts *globalOptions) *cobra.Command {
	var (
		view       string
		zoom       string
		noMetadata bool
	)

	cmd := &cobra.Command{
		Use:   "resolve-size",
		Short: "Resolve the icon size for a folder view",
		Long: `Resolve the pixel size a folder icon is shown at, from the parent folder's
view metadata and the configured view defaults.

--view accepts a view name (icon-view, list-view, compact-view) or a file
manager view id such as OAFIID:Nemo_File_Manager_List_View. --zoom accepts a
zoom level name (smallest..largest) or index (0..6).`,
		Example: `  foldertint resolve-size --view list-view --zoom larger
  foldertint resolve-size --no-metadata`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var meta *viewsize.ViewMetadata
			if !noMetadata {
				if err := checkView(opts.cfg.View.Table(), view); err != nil {
					return err
				}
				meta = &viewsize.ViewMetadata{View: view, ZoomLevel: zoom}
			}

			px, err := opts.resolver().ResolveIconSize(meta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", px)
			opts.logger.Debug("nearest pre-rendered size", "size_class", int(icon.NearestSizeClass(px)))
			return nil
		},
	}

	addViewFlags(cmd.Flags(), &view, &zoom, &noMetadata)

	return cmd
}

// addViewFlags registers the flags describing a parent folder's view metadata.
func addViewFlags(fs *pflag.FlagSet, view, zoom *string, noMetadata *bool) {
	fs.StringVar(view, "view", "", "folder view name or id (default: configured default view)")
	fs.StringVar(zoom, "zoom", "", fmt.Sprintf("zoom level (%s) or index 0-%d (default: the view's default)",
		strings.Join(viewsize.ZoomLevelNames(), "|"), viewsize.ZoomLevelCount-1))
	fs.BoolVar(noMetadata, "no-metadata", false, "resolve as if the parent folder is unknown")
}

// checkView rejects a --view that names no entry in the zoom table.
func checkView(table viewsize.ZoomTable, view string) error {
	if view == "" {
		return nil
	}
	if _, ok := table[viewsize.NormalizeView(view)]; !ok {
		return fmt.Errorf("%w: %q (known views: %s)", viewsize.ErrUnknownView, view, strings.Join(table.Views(), ", "))
	}
	return nil
}
