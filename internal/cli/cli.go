// Package cli implements the archwall command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/buildinfo"
	"github.com/matzehuels/archwall/pkg/cache"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/observability"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "archwall"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

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

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "archwall paints nested arch compositions",
		Long: `archwall paints compositions of nested arches, rectangles capped by a
semicircle, in the manner of Sol LeWitt's wall drawings. Compositions are
TOML or JSON files; without one, the built-in three-arch reference is used.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetRenderHooks(logHooks{logger: c.Logger})
			observability.SetCacheHooks(logHooks{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheOpts selects the artifact cache backend.
type cacheOpts struct {
	disabled bool
	redisURL string
	dbPath   string
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.disabled, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&o.redisURL, "redis", "", "Redis URL for a shared artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&o.dbPath, "cache-db", "", "SQLite file for the artifact cache instead of the cache directory")
}

// newRunner creates a pipeline runner backed by the selected cache.
func (c *CLI) newRunner(ctx context.Context, o cacheOpts, keyer cache.Keyer) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, o)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, o cacheOpts) (cache.Cache, error) {
	switch {
	case o.disabled:
		return cache.NewNullCache(), nil
	case o.redisURL != "":
		if err := apperr.ValidateURL(o.redisURL, "redis", "rediss"); err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(ctx, o.redisURL)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "connect to redis")
		}
		c.Logger.Debug("using redis cache", "url", o.redisURL)
		return rc, nil
	case o.dbPath != "":
		sc, err := cache.NewSQLiteCache(ctx, o.dbPath)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "open cache database")
		}
		c.Logger.Debug("using sqlite cache", "path", o.dbPath)
		return sc, nil
	}

	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache directory unusable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}
