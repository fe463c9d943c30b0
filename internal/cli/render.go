package cli

import (
	"context"

	"github.com/spf13/cobra"

	c4io "github.com/matzehuels/c4render/pkg/io"
	"github.com/matzehuels/c4render/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	level   string // context|container|component|code, c1..c4, or auto
	format  string // png, jpg, svg, pdf, dot; empty selects the config default
	output  string // output directory; empty selects the config default
	name    string // output base name without extension
	noCache bool   // bypass the artifact cache entirely
	refresh bool   // re-render even on a cache hit
	dryRun  bool   // render without writing a file
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram document to an image",
		Long: `Render a C4 diagram document (JSON or YAML) to png, jpg, svg, pdf or dot.

The level is detected from the document keys unless --level is given. The
output file is named after the level (e.g. c4_level2_container.png) unless
--name is given.`,
		Example: `  c4render render banking.json
  c4render render api.yaml --level component --format svg -o docs/diagrams
  c4render render classes.json -f pdf -n payment_classes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.level, "level", "l", levelAuto, "diagram level: context, container, component, code, c1-c4 or auto")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpg, svg, pdf, dot (default from config, png)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, diagrams_output)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output file name without extension (default c4_levelN_<level>)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite the cached artifact")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render without writing the output file")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	level, err := parseLevelFlag(opts.level)
	if err != nil {
		return err
	}
	d, err := c4io.Import(path, level)
	if err != nil {
		return err
	}
	logger.Debug("loaded document", "path", path, "level", d.Level(), "title", d.Title())

	if opts.output == "" {
		opts.output = cfg.Render.OutputDir
	}
	if opts.format == "" {
		opts.format = cfg.Render.Format
	}

	runner, err := c.newRunner(ctx, cfg, opts.output, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, d, pipeline.Options{
		Format:   opts.format,
		Filename: opts.name,
		Refresh:  opts.refresh,
		DryRun:   opts.dryRun,
	})
	if err != nil {
		return err
	}

	if opts.dryRun {
		printSuccess("Rendered %s (%d bytes, not written)", d.Level().Heading(), len(res.Data))
	} else {
		printSuccess("Rendered %s", d.Level().Heading())
		printFile(res.Path)
	}
	printStats(d.EntityCount(), res.Connectors, len(res.Skipped), res.CacheHit)
	printSkipped(res.Skipped)
	return nil
}
