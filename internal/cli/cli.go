// Package cli implements the c4render command-line interface.
//
// # Commands
//
//   - render: Draw a diagram document to png, jpg, svg, pdf or dot
//   - export: Normalize a document or convert it between JSON and YAML
//   - validate: Check a document and report dangling relationships
//   - inspect: Browse a document's entities and relationships
//   - serve: Run the HTTP API
//   - cache: Inspect and clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4render/internal/config"
	"github.com/matzehuels/c4render/pkg/buildinfo"
	"github.com/matzehuels/c4render/pkg/c4"
	"github.com/matzehuels/c4render/pkg/cache"
	"github.com/matzehuels/c4render/pkg/errors"
	"github.com/matzehuels/c4render/pkg/pipeline"
	"github.com/matzehuels/c4render/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the binary name used in help text and completion scripts.
const appName = config.AppName

// levelAuto asks for level detection from the document keys.
const levelAuto = "auto"

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

	// configPath is bound to the persistent --config flag.
	configPath string
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
		Short: "c4render draws C4 architecture diagrams",
		Long: `c4render builds C4 model diagrams (context, container, component and code
levels) from JSON or YAML documents and renders them to PNG, JPG, SVG, PDF or
Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/c4render/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	for _, cmd := range root.Commands() {
		registerFlagCompletions(cmd)
	}

	return root
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		if err := errors.ValidatePath("config", c.configPath); err != nil {
			return nil, err
		}
	}
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner writing into outputDir.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, outputDir string, noCache bool) (*pipeline.Runner, error) {
	if err := errors.ValidatePath("output", outputDir); err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace)
	}

	opts := append(cfg.RendererOptions(), render.WithLogger(c.Logger))
	r := pipeline.NewRunner(ch, keyer, render.NewRenderer(outputDir, opts...), c.Logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

// newCache selects the artifact cache: Redis when a URL is configured,
// otherwise the file cache, or nothing at all when caching is off.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.Cache.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("open file cache: %w", err)
	}
	return fc, nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseLevelFlag maps the --level flag to a level. Empty and "auto" return
// zero, which asks the decoder to detect the level.
func parseLevelFlag(s string) (c4.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, levelAuto) {
		return 0, nil
	}
	return c4.ParseLevel(s)
}
