package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noisebox/artforge/internal/assets"
	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/suggest"
)

func newSuggestCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "suggest <photo>",
		Short: "Suggest a background colour and threshold for a photo",
		Long: `Suggest samples the border of a photo, picks its dominant colour as the
key background and proposes a threshold that keys most of the border. The
result is printed as a row for the priority extraction table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cat, err := assets.ParseCategory(category)
			if err != nil {
				return err
			}

			img, err := imageio.NewFileLoader().Load(args[0])
			if err != nil {
				return err
			}

			s, err := suggest.Suggest(img)
			if err != nil {
				return fmt.Errorf("cannot suggest a key for %s: %w", args[0], err)
			}

			fmt.Fprintf(a.stdout, "Background: %s %s\n", s.Background.Hex(), s.Background)
			fmt.Fprintf(a.stdout, "Threshold:  %d (keys %.0f%% of the border, spread %.1f)\n", s.Threshold, s.Coverage*100, s.Spread)
			fmt.Fprintln(a.stdout, suggest.Row(args[0], cat, s))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(assets.CategoryKnobs), "category for the suggested row")
	return cmd
}
