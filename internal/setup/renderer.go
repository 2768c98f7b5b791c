// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"

	"github.com/bethropolis/dir-tree/internal/ignore"
	"github.com/bethropolis/dir-tree/internal/tree"
	"github.com/bethropolis/dir-tree/internal/utils"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// RendererConfig holds all parameters needed to configure a tree render
type RendererConfig struct {
	RootDir      string
	IgnoreHidden bool
	IgnoreFile   string
	CustomIgnore string
	Exclude      string
	Engine       string
	MaxDepth     int
	VisibleLast  bool
	Context      context.Context
	Logger       utils.Logger
}

// ConfigureRenderer loads the ignore matcher for cfg.RootDir and builds
// the matching tree options. The matcher is nil when the root has no
// ignore file and no custom patterns were given.
func ConfigureRenderer(cfg RendererConfig, infoLog InfoLogger) (ignore.Matcher, []tree.Option, error) {
	logger := utils.OrNoop(cfg.Logger)
	if infoLog == nil {
		infoLog = func(string, ...interface{}) {}
	}

	engine, err := ignore.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, nil, err
	}

	// --- Parse custom ignore patterns ---
	customPatterns := utils.SplitList(cfg.CustomIgnore)
	if len(customPatterns) > 0 {
		infoLog("Using custom ignore patterns: %v", customPatterns)
	}

	// --- Initialize ignore matcher ---
	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:     cfg.RootDir,
		FileName:    cfg.IgnoreFile,
		Engine:      engine,
		CustomRules: customPatterns,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}
	if matcher == nil {
		logger.Debug("setup: no ignore rules for %s", cfg.RootDir)
	}

	// --- Set up tree options ---
	treeOptions := []tree.Option{
		tree.WithLogger(logger),
		tree.WithHiddenIgnore(cfg.IgnoreHidden),
		tree.WithMaxDepth(cfg.MaxDepth),
		tree.WithVisibleLast(cfg.VisibleLast),
	}

	if exclusions := utils.SplitList(cfg.Exclude); len(exclusions) > 0 {
		infoLog("Also excluding directories named: %v", exclusions)
		treeOptions = append(treeOptions, tree.WithExclusions(exclusions...))
	}
	if cfg.IgnoreHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	}
	if cfg.Context != nil {
		treeOptions = append(treeOptions, tree.WithContext(cfg.Context))
	}

	return matcher, treeOptions, nil
}
