package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/buildinfo"
	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/config"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treeviz"
)

// Log levels exported for use in main.go.
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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Treeviz draws trees and graphs from level-order arrays",
		Long: `Treeviz reconstructs a binary tree, n-ary tree or cyclic graph from a
level-order value array such as [1, 2, 3, null, 4] and lays it out for
display as SVG, PNG, PDF, Graphviz, Mermaid or ASCII.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/treeviz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and registers logging hooks.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	c.Logger.Debug("loaded config", "kind", cfg.Kind, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache picks the backend named by the config. A cache that cannot be
// opened degrades to no caching, except an explicitly configured Redis.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/treeviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// bindBuildFlags registers the flags shared by every command that builds a
// structure from an array.
func bindBuildFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", pipeline.DefaultKind, "structure kind: binary (default), nary, graph")
	cmd.Flags().IntVar(&opts.MaxChildren, "max-children", 0, "child bound for nary (default 3)")
	registerKindCompletion(cmd)
}

// bindLayoutFlags registers the visibility and geometry flags.
func bindLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	d := config.Default().Layout
	cmd.Flags().BoolVar(&opts.ShowAbsent, "show-absent", false, "draw null slots as nodes")
	cmd.Flags().Float64Var(&opts.Geometry.NodeSpacing, "node-spacing", d.NodeSpacing, "horizontal distance per leaf slot")
	cmd.Flags().Float64Var(&opts.Geometry.LevelSpacing, "level-spacing", d.LevelSpacing, "vertical distance per level")
	cmd.Flags().Float64Var(&opts.Geometry.NodeRadius, "node-radius", d.NodeRadius, "node circle radius")
}

// bindRenderFlags registers the output flags.
func bindRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style: simple (default), dark")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label DOT nodes with their array index")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	registerRenderCompletion(cmd, true)
}

// applyConfig fills every option whose flag was not set on the command line
// from the loaded config. Flags win over the file, the file over defaults.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	cfg := c.Config
	fromConfig := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	if fromConfig("kind") {
		opts.Kind = cfg.Kind
	}
	if fromConfig("max-children") {
		opts.MaxChildren = cfg.MaxChildren
	}
	if fromConfig("show-absent") {
		opts.ShowAbsent = cfg.ShowAbsent
	}
	if fromConfig("style") {
		opts.Style = cfg.Style
	}

	g := cfg.Layout.Engine()
	if fromConfig("node-spacing") {
		opts.Geometry.NodeSpacing = g.NodeSpacing
	}
	if fromConfig("level-spacing") {
		opts.Geometry.LevelSpacing = g.LevelSpacing
	}
	if fromConfig("node-radius") {
		opts.Geometry.NodeRadius = g.NodeRadius
	}
	opts.Geometry.HorizontalPadding = g.HorizontalPadding
	opts.Geometry.VerticalPadding = g.VerticalPadding
	opts.Geometry.PairRadiusScale = g.PairRadiusScale

	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
