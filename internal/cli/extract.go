package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/extractor"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Key the priority photos into transparent PNGs",
		Long: `Extract walks the built-in table of priority photos, removes each photo's
background colour and writes:

  art/extracted/{category}/{name}_raw.png
  art/ui-ready/{category}/{name}_{size}.png

Photos that are not present under art/original are skipped.

Examples:
  # Extract with the default 64, 128 and 256 sizes
  artforge extract

  # Extract into another checkout at custom sizes
  artforge --project-root ../skin extract --sizes 48,96`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runExtract(a)
		},
	}

	addSizesFlag(cmd.Flags(), &a.cfg.ExtractSizes)
	return cmd
}

// addSizesFlag registers --sizes on f, defaulting to the current contents of dst.
func addSizesFlag(f *pflag.FlagSet, dst *[]int) {
	f.IntSliceVar(dst, "sizes", *dst, "square variant sizes in pixels")
}

func runExtract(a *app) error {
	l := a.layout()
	specs := assets.PriorityAssets()

	categories := make([]assets.Category, 0, len(specs))
	for _, s := range specs {
		categories = append(categories, s.Category)
	}
	if err := l.EnsureOutputDirs(categories); err != nil {
		return err
	}

	e := extractor.New(l,
		extractor.WithSizes(a.cfg.ExtractSizes),
		extractor.WithLogger(a.logger.Named("extract")),
	)
	summary := e.Run(specs)

	fmt.Fprintf(a.stdout, "Extracted %d/%d assets (%d skipped, %d failed), %d files written\n",
		summary.Succeeded, summary.Total(), summary.Skipped, summary.Failed, summary.FilesWritten())
	return nil
}
