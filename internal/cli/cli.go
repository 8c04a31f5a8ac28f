// Package cli implements the foodstack command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/buildinfo"
	"github.com/matzehuels/foodstack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "foodstack"

	// configName is the file looked up in the config directory when
	// --config is not given.
	configName = "config.toml"
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

	// out receives command output; os.Stdout unless replaced in tests.
	out io.Writer

	// Persistent flags shared by every command.
	configPath  string
	catalogPath string
	dish        string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Foodstack lays out and prices burgers and pizzas",
		Long:         `Foodstack turns a list of ingredients into a deterministic 3D arrangement of pieces on a plate, with nutrition totals and price. It renders the arrangement to SVG, PNG, or JSON and includes an interactive terminal builder.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/foodstack/config.toml)")
	root.PersistentFlags().StringVar(&c.catalogPath, "catalog", "", "custom ingredient catalog (TOML); overrides --dish")
	root.PersistentFlags().StringVar(&c.dish, "dish", "", "built-in dish: pizza (default), burger")

	// Register all subcommands
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.nutritionCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.completionCommand())
	c.registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// options builds pipeline options from the persistent flags and the config
// file. Flags win over the file.
func (c *CLI) options(ids []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Dish:        c.dish,
		CatalogPath: c.catalogPath,
		Selection:   parseSelection(ids),
		Logger:      c.Logger,
	}

	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return opts, nil
	}
	if !explicit {
		if _, err := os.Stat(path); err != nil {
			return opts, nil
		}
	}

	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts)
	c.Logger.Debug("loaded config", "path", path)
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/foodstack/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the implicit config file path, or "" if the
// config directory cannot be determined.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configName)
}

// =============================================================================
// Argument Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config file or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// parseSelection accepts ids as separate arguments, comma-separated, or
// both: "dough sauce,cheese" yields [dough sauce cheese].
func parseSelection(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
