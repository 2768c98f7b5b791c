package tree

import (
	"context"
	"os"

	"github.com/bethropolis/dir-tree/internal/utils"
)

// Options configures Render and Walk
type Options struct {
	Logger       utils.Logger
	Context      context.Context
	Root         string
	Exclusions   map[string]struct{}
	IgnoreHidden bool
	MaxDepth     int
	VisibleLast  bool

	readDir func(name string) ([]os.DirEntry, error)
}

func defaultOptions() Options {
	exclusions := make(map[string]struct{}, len(DefaultExclusions))
	for _, name := range DefaultExclusions {
		exclusions[name] = struct{}{}
	}
	return Options{
		Logger:     utils.NoopLogger{},
		Context:    context.Background(),
		Exclusions: exclusions,
		readDir:    os.ReadDir,
	}
}

// Option is a functional option for configuring Options
type Option func(*Options)

func WithLogger(logger utils.Logger) Option {
	return func(o *Options) {
		o.Logger = utils.OrNoop(logger)
	}
}

// WithContext stops the render between entries once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}

// WithRoot sets the directory that paths handed to the matcher are
// relative to. It defaults to the rendered path.
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}

// WithExclusions adds directory names to the hardcoded exclusion set. The
// defaults always stay in effect.
func WithExclusions(names ...string) Option {
	return func(o *Options) {
		for _, name := range names {
			if name != "" {
				o.Exclusions[name] = struct{}{}
			}
		}
	}
}

// WithHiddenIgnore skips entries whose name starts with a dot.
func WithHiddenIgnore(enabled bool) Option {
	return func(o *Options) {
		o.IgnoreHidden = enabled
	}
}

// WithMaxDepth limits how many levels are rendered; 0 means unlimited.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth >= 0 {
			o.MaxDepth = depth
		}
	}
}

// WithVisibleLast picks the corner connector for the last visible entry
// of a directory instead of the last entry of the unfiltered listing.
func WithVisibleLast(enabled bool) Option {
	return func(o *Options) {
		o.VisibleLast = enabled
	}
}
