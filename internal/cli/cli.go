// Package cli implements the morphgraph command-line interface.
//
// Commands read a graph tree in the JSON format of package io, run it
// through the pipeline and write the result:
//
//   - repair: bridge disconnected fragments
//   - reduce: repair, then collapse process nodes into a stick figure
//   - processes: list unbranched chains
//   - inspect, browse: classify every graph in the tree
//   - render: DOT, SVG, PDF or PNG output
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// Settings come from flags, then the TOML config file, then defaults.
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

	"github.com/matzehuels/morphgraph/pkg/buildinfo"
	"github.com/matzehuels/morphgraph/pkg/cache"
	mgerrors "github.com/matzehuels/morphgraph/pkg/errors"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/pipeline"
)

// appName is used for directories and display.
const appName = "morphgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a CLI logging to w at level.
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
		Use:           appName,
		Short:         "Morphgraph repairs and reduces spatial morphology graphs",
		Long:          `Morphgraph loads hierarchical spatial graphs of neuronal morphology, bridges disconnected fragments, collapses unbranched processes into stick figures and renders the result.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd.Flags().Changed("config")); err != nil {
				return err
			}
			c.SetLogLevel(c.config.logLevel())
			cmd.SetContext(withCommand(cmd.Context(), c.Logger, cmd.Name()))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath(), "config file")

	root.AddCommand(c.repairCommand())
	root.AddCommand(c.reduceCommand())
	root.AddCommand(c.processesCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(explicit bool) error {
	cfg, err := loadConfig(c.configPath, explicit)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// cfg returns the loaded config, or the defaults when no command has
// loaded one yet.
func (c *CLI) cfg() *Config {
	if c.config == nil {
		c.config = defaultConfig()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.TTL = c.cfg().Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.cfg().Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.RedisAddr,
			DB:     cfg.RedisDB,
			Prefix: appName + ":",
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/morphgraph/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

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
// Input/Output Helpers
// =============================================================================

// loadGraph reads a graph tree from path, or stdin when path is "-".
func loadGraph(ctx context.Context, runner *pipeline.Runner, path string, stdin io.Reader) (*morph.Graph, error) {
	if path == "-" {
		return runner.Load(ctx, stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return runner.Load(ctx, f)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := mgerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

// parseFormats parses a comma-separated format list. Empty entries are
// dropped so "svg," and "svg" are equivalent.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPath derives the path for format from base: "out" becomes
// "out.svg", and an existing extension is replaced when rendering several
// formats.
func outputPath(base, input, format string, multi bool) string {
	if base == "" {
		if input == "-" {
			input = "graph"
		}
		base = strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if !multi && filepath.Ext(base) != "" {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.1f KB", float64(info.Size())/1024)
}
