package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repolens/internal/config"
	"github.com/matzehuels/repolens/pkg/buildinfo"
	"github.com/matzehuels/repolens/pkg/cache"
	"github.com/matzehuels/repolens/pkg/pipeline"
)

const appName = "repolens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	out io.Writer // Artifacts written to "-"
}

// New creates a CLI that logs to w at level. Settings come from the
// environment and an optional .env file.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Load(),
		out:    os.Stdout,
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
		Short: "Repolens analyzes repositories and writes their README",
		Long: `Repolens takes a snapshot of a GitHub, GitLab or local repository, detects its
language, package manager and dependencies, and generates a README or a
dependency graph from the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.readmeCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The caller closes it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.pipelineConfig(), c.Logger), nil
}

// openCache opens Redis when REDIS_URL is set and the file cache otherwise.
func (c *CLI) openCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	opts := cache.Options{
		Disabled: disabled,
		RedisURL: c.Config.Cache.RedisURL,
	}
	if opts.RedisURL == "" && !disabled {
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

func (c *CLI) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		GitHubToken: c.Config.GitHubToken,
		GitLabToken: c.Config.GitLabToken,
		GitLabURL:   c.Config.GitLabURL,
		TTL:         c.Config.Cache.TTL,
		Concurrency: c.Config.Concurrency,
	}
}

// cacheDir returns REPOLENS_CACHE_DIR when set, the XDG location otherwise.
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/repolens/).
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

// target turns a command argument into pipeline options: an existing
// directory is analyzed in place, anything else is treated as a URL.
func target(arg string) pipeline.Options {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return pipeline.Options{Dir: arg}
	}
	return pipeline.Options{URL: arg}
}

// writeOutput writes data to path, or to the CLI's stdout when path is
// empty or "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
