package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bethropolis/dir-tree/internal/config"
	"github.com/bethropolis/dir-tree/internal/logger"
	"github.com/bethropolis/dir-tree/internal/printer"
	"github.com/bethropolis/dir-tree/internal/setup"
	"github.com/bethropolis/dir-tree/internal/summary"
	"github.com/bethropolis/dir-tree/internal/tree"
	"github.com/fatih/color"
)

const (
	welcomeMessage     = "Welcome to Directory Structure Viewer!"
	instructionMessage = "Enter a directory path to generate its tree structure, or type 'exit' to quit."
	promptMessage      = "Enter directory path: "
	invalidPathMessage = "Invalid path. Please enter a valid directory path."
	goodbyeMessage     = "Exiting the program. Goodbye!"
	successMessage     = "Tree generated successfully. Enter another path or type 'exit' to quit."
	interruptedMessage = "Program interrupted. Exiting now."
	exitCommand        = "exit"
)

// ErrInvalidRoot is returned when the root path is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid root directory")

// App encapsulates the main application functionality
type App struct {
	cfg *config.Config
	log *logger.Logger

	Output  io.Writer // rendered trees
	Console io.Writer // prompts and banners
	Errout  io.Writer // skipped-item report
	Input   io.Reader // interactive commands

	closer io.Closer
}

// New creates a new App instance. It opens cfg.OutputFile when set; call
// Close to release it.
func New(cfg *config.Config) (*App, error) {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	// Set up output destination
	var output io.Writer = os.Stdout
	var closer io.Closer
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		output, closer = file, file
	}

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:     cfg,
		log:     log,
		Output:  output,
		Console: os.Stdout,
		Errout:  os.Stderr,
		Input:   os.Stdin,
		closer:  closer,
	}, nil
}

// Close releases the output file, if one was opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Run renders cfg.RootDir once, or runs the interactive prompt loop. An
// interrupted context ends the run without error.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	if a.log.Enabled(logger.LevelDebug) {
		a.log.Debug("Color output: log=%v, tree=%v", a.cfg.UseColors, a.cfg.TreeColors)
		a.log.Debug("Directory: %s, interactive: %v", a.cfg.RootDir, a.cfg.Interactive)
		a.log.Debug("Ignore settings: file=%s, engine=%s, hidden=%v", a.cfg.IgnoreFile, a.cfg.Engine, a.cfg.IgnoreHidden)
		if a.cfg.CustomIgnore != "" {
			a.log.Debug("Custom ignore patterns: %s", a.cfg.CustomIgnore)
		}
	}

	var err error
	if a.cfg.Interactive {
		err = a.runInteractive(ctx)
	} else {
		err = a.RenderTree(ctx, a.cfg.RootDir)
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(a.Console, "\n%s\n", interruptedMessage)
		return nil
	}
	return err
}

// RenderTree prints the root line and the tree of root, then logs the
// summary.
func (a *App) RenderTree(ctx context.Context, root string) error {
	startTime := time.Now()

	if err := validateRoot(root); err != nil {
		return err
	}

	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	matcher, treeOptions, err := setup.ConfigureRenderer(setup.RendererConfig{
		RootDir:      root,
		IgnoreHidden: a.cfg.IgnoreHidden,
		IgnoreFile:   a.cfg.IgnoreFile,
		CustomIgnore: a.cfg.CustomIgnore,
		Exclude:      a.cfg.Exclude,
		Engine:       a.cfg.Engine,
		MaxDepth:     a.cfg.MaxDepth,
		VisibleLast:  a.cfg.VisibleLast,
		Context:      ctx,
		Logger:       a.log,
	}, infoLog)
	if err != nil {
		return err
	}

	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.TreeColors).
		WithJSON(a.cfg.JSONOutput).
		WithMarkdown(a.cfg.MarkdownOutput)

	p.PrintRoot(root)
	stats, skippedItems, walkErr := tree.Walk(root, matcher, p.PrintLine, treeOptions...)
	if err := p.Finalize(); err != nil {
		return err
	}
	if walkErr != nil {
		return fmt.Errorf("rendering %s: %w", root, walkErr)
	}

	summary.DisplayResults(a.log, stats, time.Since(startTime), a.cfg.Quiet)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.Errout, a.cfg.Quiet)
	}
	return nil
}

func (a *App) runInteractive(ctx context.Context) error {
	fmt.Fprintln(a.Console, welcomeMessage)
	fmt.Fprintf(a.Console, "%s\n\n", instructionMessage)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := readLines(readCtx, a.Input)
	for {
		fmt.Fprint(a.Console, promptMessage)

		var input string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.Console)
				return nil
			}
			input = strings.TrimSpace(line)
		}

		if strings.EqualFold(input, exitCommand) {
			fmt.Fprintln(a.Console, goodbyeMessage)
			return nil
		}

		if err := validateRoot(input); err != nil {
			a.log.Debug("Rejected path %q: %v", input, err)
			fmt.Fprintf(a.Console, "%s\n\n", invalidPathMessage)
			continue
		}

		fmt.Fprintf(a.Console, "\nDirectory Tree for: %s\n\n", input)
		if err := a.RenderTree(ctx, input); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			a.log.Error("%v", err)
			continue
		}
		fmt.Fprintf(a.Console, "\n%s\n\n", successMessage)
	}
}

// readLines feeds r line by line into a channel so the prompt loop can
// also watch for interrupts.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func validateRoot(root string) error {
	if root == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}
