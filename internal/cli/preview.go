package cli

import (
	"github.com/spf13/cobra"

	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/logging"
	"github.com/noisebox/artforge/internal/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Render an image in the terminal",
		Long: `Preview draws an image with 24-bit colour half blocks, scaled to the
terminal width. Transparent areas show as a checkerboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := imageio.NewFileLoader().Load(args[0])
			if err != nil {
				return err
			}
			w := width
			if w <= 0 {
				w = logging.TerminalWidth(a.stdout, 80)
			}
			return preview.Render(a.stdout, img, preview.Options{Width: w})
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "maximum columns (default terminal width)")
	return cmd
}
