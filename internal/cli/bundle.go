package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noisebox/artforge/internal/compression"
)

func newBundleCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Archive the ui-ready tree",
		Long: `Bundle packs art/ui-ready into a single archive whose paths are relative to
the ui-ready root, ready to unpack into the plugin's Resources/assets.
The format follows the output extension: .tar.xz, .tar.gz or .zip.

Examples:
  artforge bundle -o dist/assets.tar.xz
  artforge bundle list dist/assets.tar.xz
  artforge bundle install dist/assets.tar.xz ../GenerativeMIDI/Resources/assets`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			format, err := compression.FormatFromPath(output)
			if err != nil {
				return err
			}
			src := a.layout().UIReadyDir("")
			files, err := compression.Create(src, output, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Bundled %d files into %s\n", len(files), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join("dist", "assets.tar.xz"), "bundle path")

	cmd.AddCommand(&cobra.Command{
		Use:   "list <bundle>",
		Short: "List the files in a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			names, err := compression.List(args[0])
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(a.stdout, n)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "install <bundle> <dest>",
		Short: "Unpack a bundle into a resource directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			written, err := compression.Extract(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Installed %d files into %s\n", len(written), args[1])
			return nil
		},
	})

	return cmd
}
