package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docio "github.com/matzehuels/graphdoc/pkg/io"
	"github.com/matzehuels/graphdoc/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output     string
		colorAlpha bool
		noCache    bool
		refresh    bool
		stdout     bool
	)

	cmd := &cobra.Command{
		Use:   "generate <manifest>",
		Short: "Generate diagram text from a document manifest",
		Long: `Generate reads a document manifest (TOML or JSON), applies the configured
transforms, and writes the diagram-description text for the layout engine.

The manifest describes the document's nodes, edges, attributes, and defaults.
Generated text is cached by document content hash, so repeated runs on an
unchanged manifest are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], output, colorAlpha, noCache, refresh, stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <manifest>.gv)")
	cmd.Flags().BoolVar(&colorAlpha, "color-alpha", false, "fold alpha companion columns into color columns")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write text to stdout instead of a file")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, manifestPath, output string, colorAlpha, noCache, refresh, stdout bool) error {
	d, err := docio.ImportFile(manifestPath)
	if err != nil {
		printError("Failed to read manifest: %v", err)
		return err
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, d, pipeline.Options{
		ColorAlpha: colorAlpha,
		Refresh:    refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		printError("Generation failed: %v", err)
		return err
	}

	if stdout {
		fmt.Print(result.Text)
		return nil
	}

	if output == "" {
		output = outputPath(manifestPath, ".gv")
	}
	if err := os.WriteFile(output, []byte(result.Text), 0o644); err != nil {
		printError("Failed to write output: %v", err)
		return err
	}

	printSuccess("Generated diagram text")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.GenerateHit)
	printNextStep("Render it", fmt.Sprintf("graphdoc render %s --format svg", output))

	return nil
}

// outputPath derives an output path from the input path by swapping the
// extension.
func outputPath(input, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ext
}
