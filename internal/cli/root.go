// Package cli provides the command-line interface for artforge.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/noisebox/artforge/internal/config"
	"github.com/noisebox/artforge/internal/layout"
	"github.com/noisebox/artforge/internal/logging"
	"github.com/noisebox/artforge/internal/raster"
	"github.com/noisebox/artforge/internal/version"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfg    config.Config
	logger hclog.Logger
	stdout io.Writer
	stderr io.Writer

	// newRasterizer is swapped in tests to avoid running ImageMagick.
	newRasterizer func(raster.Kind) (raster.Rasterizer, error)
}

func (a *app) layout() layout.Layout {
	return layout.New(a.cfg.ProjectRoot)
}

func newApp(getenv func(string) string) *app {
	return &app{
		cfg:           config.Load(getenv),
		logger:        logging.Discard(),
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		newRasterizer: raster.New,
	}
}

// NewRootCmd builds the artforge command tree. getenv supplies
// environment defaults; nil reads the process environment.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	return newRootCommand(newApp(getenv))
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "artforge",
		Short: "Asset pipeline for the GenerativeMIDI steampunk skin",
		Long: `artforge turns photographed textures into transparent, multi-resolution
PNGs for the GenerativeMIDI plugin skin and keeps an inventory of the
UI-ready art.

  extract   key the priority photo table into raw and padded variants
  process   rasterize every original per category, optionally generating gaps
  status    show the per-category inventory
  bundle    archive the ui-ready tree for Resources/assets`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stdout = cmd.OutOrStdout()
			a.stderr = cmd.ErrOrStderr()
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.logger = logging.New(logging.Options{
				Verbose: a.cfg.Verbose,
				Quiet:   a.cfg.Quiet,
				Output:  a.stderr,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.cfg.Verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.cfg.Quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.cfg.ProjectRoot, "project-root", a.cfg.ProjectRoot, "project root containing art/ (env "+config.EnvProjectRoot+")")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(a),
		newExtractCmd(a),
		newProcessCmd(a),
		newStatusCmd(a),
		newBundleCmd(a),
		newPreviewCmd(a),
		newSuggestCmd(a),
	)

	return rootCmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(a.stdout, version.String())
		},
	}
}
