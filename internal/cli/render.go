package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/cache"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string  // output file, or base path when several formats are written
	formats string  // comma-separated formats
	scale   float64 // PNG scale factor
	refresh bool    // bypass cache lookups
	cache   cacheOpts
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{formats: pipeline.FormatSVG, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a composition to SVG, PNG, PDF or JSON",
		Long: `Render paints a composition file (.toml or .json) and writes one file per
requested format. Without a file the built-in reference composition is
rendered.`,
		Example: `  archwall render
  archwall render wall.toml -f svg,png --scale 2
  archwall render wall.json -o out/wall.pdf -f pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}

	comp, err := pipeline.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, cache.NewDefaultKeyer())
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", displayName(comp, input)))
	spinner.Start()
	result, err := runner.Execute(ctx, comp, pipeline.Options{
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	paths := outputPaths(opts.output, input, comp.Name, formats)
	for _, format := range formats {
		logger.Debug("writing artifact", "format", format, "path", paths[format], "bytes", len(result.Artifacts[format]))
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("wrote %d file(s)", len(formats)))

	printSuccess("Rendered %s", displayName(comp, input))
	fmt.Println(renderStats(result.Stats.Arches, result.Stats.Painted, result.Stats.Skipped, result.CacheInfo.AllHit()))
	for _, format := range formats {
		printFile(paths[format])
	}
	if result.Stats.Skipped > 0 {
		printWarning("%d arch(es) have no paintable area and were skipped", result.Stats.Skipped)
	}
	return nil
}

// outputPaths maps every format to the file it is written to. A single
// format with an explicit output is written there verbatim unless the
// output carries another format's extension; otherwise files are named
// base.format.
func outputPaths(output, input, name string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		ext := strings.TrimPrefix(filepath.Ext(output), ".")
		if ext == formats[0] || !slices.Contains(pipeline.ValidFormats, ext) {
			paths[formats[0]] = output
			return paths
		}
	}
	base := basePath(output, input, name)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the output path without extension. An explicit output
// has a known format extension stripped; otherwise the input's extension
// is stripped, and the composition name is used when there is no input.
func basePath(output, input, name string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if name != "" {
		return name
	}
	return arch.Reference().Name
}

func writeArtifact(path string, data []byte) error {
	if err := apperr.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func displayName(comp arch.Composition, input string) string {
	switch {
	case input != "":
		return filepath.Base(input)
	case comp.Name != "":
		return comp.Name
	default:
		return "composition"
	}
}
