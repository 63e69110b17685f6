package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/noisebox/artforge/internal/batch"
	"github.com/noisebox/artforge/internal/config"
	"github.com/noisebox/artforge/internal/generate"
	"github.com/noisebox/artforge/internal/preflight"
	"github.com/noisebox/artforge/internal/raster"
)

func newProcessCmd(a *app) *cobra.Command {
	var showStatus bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Rasterize originals into UI-ready variants",
		Long: `Process resizes and keys every image under art/original/{category} into
art/ui-ready/{category}/{name}_{size}.png, then writes the catalog to
art/catalog/ui_elements.json.

With --generate, catalog variants that have no UI-ready file are requested
from a text-to-image backend and rasterized the same way. The inventory is
printed when processing finishes; --status prints it and stops.

Examples:
  # Process every category with ImageMagick
  artforge process

  # Process knobs only, in-process
  artforge process --category knobs --rasterizer builtin

  # Print the inventory without processing anything
  artforge process --status

  # Fill gaps with OpenAI images
  OPENAI_API_KEY=... artforge process --generate --generator openai`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runProcess(ctx, a, showStatus)
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.Category, "category", "", "process a single category")
	f.BoolVar(&a.cfg.Generate, "generate", false, "generate missing catalog variants")
	f.BoolVar(&showStatus, "status", false, "only print the inventory, without processing")
	f.StringVar(&a.cfg.APIKey, "api-key", "", "generator API key (default from "+config.EnvGoogleKey+" or "+config.EnvOpenAIKey+")")
	f.StringVar((*string)(&a.cfg.Generator), "generator", string(a.cfg.Generator), "generation backend (genai, openai, plugin)")
	f.StringVar(&a.cfg.Model, "model", "", "generation model (backend default when empty)")
	f.StringVar(&a.cfg.PluginPath, "plugin-path", "", "generator plugin binary for --generator plugin")
	f.StringVar((*string)(&a.cfg.Rasterizer), "rasterizer", string(a.cfg.Rasterizer), "raster tool (magick, builtin)")
	f.BoolVar(&a.cfg.NoCache, "no-cache", false, "always call the generator, ignoring cached images")
	f.BoolVar(&a.cfg.Force, "force", false, "re-render variants that already exist")
	addSizesFlag(f, &a.cfg.BatchSizes)

	return cmd
}

// runProcess checks the raster tool, then either reports the inventory
// (showStatus) or processes the categories and reports afterwards.
func runProcess(ctx context.Context, a *app, showStatus bool) error {
	r, err := a.newRasterizer(a.cfg.Rasterizer)
	if err != nil {
		return err
	}
	if err := r.CheckAvailable(ctx); err != nil {
		if r.Name() == string(raster.KindMagick) {
			fmt.Fprintln(a.stderr, raster.InstallHint())
		}
		return err
	}

	if showStatus {
		return printStatus(a, true)
	}

	categories, err := a.cfg.Categories()
	if err != nil {
		return err
	}

	preflight.WarnConcurrentRuns(a.logger)

	opts := []batch.Option{
		batch.WithSizes(a.cfg.BatchSizes),
		batch.WithForce(a.cfg.Force),
		batch.WithLogger(a.logger.Named("process")),
	}

	if a.cfg.Generate {
		genCfg := a.cfg.GeneratorConfig()
		genCfg.Logger = a.logger.Named("generate")
		gen, err := generate.New(genCfg)
		if err != nil {
			a.logger.Error("generation disabled", "error", err)
		} else {
			defer generate.Close(gen)
			opts = append(opts, batch.WithGenerator(gen))
		}
	}

	l := a.layout()
	report := batch.New(l, r, opts...).ProcessAll(ctx, categories, a.cfg.Generate)

	fmt.Fprintf(a.stdout, "Processed %d categories: %d variants written, %d failed, %d generated\n",
		len(report.Categories), report.Written(), report.Failed(), report.Generated())

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return printStatus(a, true)
}
