package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdoc/internal/api"
	"github.com/matzehuels/graphdoc/pkg/cache"
	"github.com/matzehuels/graphdoc/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		Long: `Serve starts an HTTP server exposing the pipeline:

  POST /generate  - generate diagram text from a JSON document
  POST /render    - render a JSON document into an svg or png artifact
  GET  /healthz   - health check

Generated text and artifacts share the same content-hash cache as the CLI
by default; --redis switches to a shared Redis backend so multiple server
instances reuse each other's results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address (host:port) for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	var runner *pipeline.Runner
	if redisAddr != "" && !noCache {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			printError("Failed to connect to redis at %s: %v", redisAddr, err)
			return err
		}
		runner = pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, appName+":"), c.Logger)
	} else {
		runner = c.newRunner(noCache)
	}
	defer runner.Close()

	printInfo("Serving on %s", addr)
	printNextStep("Try it", fmt.Sprintf("curl -X POST localhost%s/generate -d @manifest.json", addr))

	server := api.NewServer(runner, c.Logger)
	return server.ListenAndServe(ctx, addr)
}
