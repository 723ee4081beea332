package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/buildinfo"
	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flowgrid"

	// redisURLEnv enables the shared Redis cache when --redis-url is unset.
	redisURLEnv = "FLOWGRID_REDIS_URL"

	// redisConnectTimeout bounds the initial Redis ping.
	redisConnectTimeout = 5 * time.Second
)

// Log levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the flowgrid command tree. The persistent --verbose
// flag lowers the log level to debug before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flowgrid parses flowchart diagrams and lays them out on a grid",
		Long:         `Flowgrid reads Mermaid-style flowchart text, builds a typed graph of nodes, edges and subgraphs, and assigns every node a position on a layered grid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags are the cache selection flags shared by parse and serve.
type cacheFlags struct {
	noCache  bool
	redisURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching of laid-out diagrams")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "use a shared Redis cache (env: "+redisURLEnv+")")
}

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// release, so upgrading never reuses layouts computed by an older build.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when a URL
// is configured, otherwise the local file cache.
func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}

	url := f.redisURL
	if url == "" {
		url = os.Getenv(redisURLEnv)
	}
	if url != "" {
		ctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Debug("using redis cache")
		return rc, nil
	}

	dir, err := cacheDir()
	if err != nil {
		printWarning("Caching disabled: %v", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory ($XDG_CACHE_HOME/flowgrid or the
// platform user cache directory).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
