package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bethropolis/dir-tree/internal/ignore"
	"github.com/bethropolis/dir-tree/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// Version is the application version, overridable at link time.
var Version = "1.0.0"

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir     string
	Interactive bool

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool // colored log prefixes on stderr
	TreeColors  bool // colored directory names in the rendered tree
	OutputFile  string
	ShowSkipped bool

	// Rendering settings
	MaxDepth    int
	VisibleLast bool
	Timeout     time.Duration

	// Filtering settings
	IgnoreHidden bool
	IgnoreFile   string
	CustomIgnore string
	Exclude      string
	Engine       string

	// Output format
	JSONOutput     bool
	MarkdownOutput bool

	Version string
}

// New creates a Config holding the default settings
func New() *Config {
	return &Config{
		RootDir:    ".",
		IgnoreFile: ignore.DefaultFileName,
		Engine:     string(ignore.EngineNative),
		Version:    Version,
	}
}

// BindFlags registers every setting on fs
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.RootDir, "dir", "d", c.RootDir, "The root directory to render")
	fs.BoolVarP(&c.Interactive, "interactive", "i", c.Interactive, "Prompt for directories until 'exit' is entered")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Enable verbose logging (DEBUG, WARN, ERROR)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", c.Quiet, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE)")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable color output")
	fs.StringVarP(&c.OutputFile, "output", "o", c.OutputFile, "Write the tree to a file instead of stdout")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", c.ShowSkipped, "List skipped files/directories and reasons at the end")
	fs.IntVarP(&c.MaxDepth, "depth", "L", c.MaxDepth, "Maximum number of levels to render (0 = unlimited)")
	fs.BoolVar(&c.VisibleLast, "visible-last", c.VisibleLast, "Draw the corner connector on the last visible entry instead of the last listed one")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum execution time (e.g., '30s', '5m')")
	fs.BoolVar(&c.IgnoreHidden, "hidden", c.IgnoreHidden, "Ignore hidden files/directories (starting with '.')")
	fs.StringVar(&c.IgnoreFile, "ignore-file", c.IgnoreFile, "Name of the ignore file read from the root directory")
	fs.StringVar(&c.CustomIgnore, "ignore", c.CustomIgnore, "Extra ignore patterns (comma-separated, gitignore syntax)")
	fs.StringVar(&c.Exclude, "exclude", c.Exclude, "Extra directory names that are never listed (comma-separated)")
	fs.StringVar(&c.Engine, "engine", c.Engine, "Ignore pattern engine: native, denormal or sabhiram")
	fs.BoolVar(&c.JSONOutput, "json", c.JSONOutput, "Output the tree as JSON")
	fs.BoolVar(&c.MarkdownOutput, "markdown", c.MarkdownOutput, "Output the tree as a Markdown code block")
}

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	var errs []error
	if c.JSONOutput && c.MarkdownOutput {
		errs = append(errs, errors.New("--json and --markdown are mutually exclusive"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("--depth must not be negative, got %d", c.MaxDepth))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("--timeout must not be negative, got %v", c.Timeout))
	}
	if _, err := ignore.ParseEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// isTerminal reports whether fd is an interactive terminal.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Finalize derives settings that depend on the environment, such as
// whether colors are used. Log colors follow stderr; tree colors follow
// stdout, since that is where the tree is written.
func (c *Config) Finalize() {
	c.finalize(isTerminal(os.Stderr.Fd()), isTerminal(os.Stdout.Fd()))
}

func (c *Config) finalize(stderrTerminal, stdoutTerminal bool) {
	c.UseColors = !c.NoColor && stderrTerminal
	c.TreeColors = !c.NoColor && stdoutTerminal && c.OutputFile == "" &&
		!c.JSONOutput && !c.MarkdownOutput
}
