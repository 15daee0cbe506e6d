package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdoc/pkg/pipeline"
	"github.com/matzehuels/graphdoc/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats []string
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render <text-file>",
		Short: "Render diagram text into image artifacts",
		Long: `Render hands previously generated diagram text to the layout engine and
writes the resulting artifacts (svg, png) next to the input file.

Artifacts are cached by text content hash, so re-rendering unchanged text
is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], formats, output, noCache, refresh)
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{render.FormatSVG}, "artifact formats (svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path base (default: input path without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, textPath string, formats []string, output string, noCache, refresh bool) error {
	data, err := os.ReadFile(textPath)
	if err != nil {
		printError("Failed to read input: %v", err)
		return err
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, string(data), pipeline.Options{
		Formats: formats,
		Refresh: refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		printError("Rendering failed: %v", err)
		return err
	}

	if output == "" {
		output = outputPath(textPath, "")
	}
	output = strings.TrimSuffix(output, ".")

	printSuccess("Rendered %d artifact(s)", len(artifacts))
	for _, format := range formats {
		path := output + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			printError("Failed to write %s: %v", path, err)
			return err
		}
		printFile(path)
	}
	printStats(0, 0, cached)

	return nil
}
