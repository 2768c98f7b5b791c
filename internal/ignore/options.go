package ignore

import "github.com/bethropolis/dir-tree/internal/utils"

// Option configures Load
type Option func(*loader)

// WithCustomRules appends patterns after the ignore file's own lines, so
// they take precedence over it.
func WithCustomRules(patterns []string) Option {
	return func(l *loader) {
		l.customPatterns = append(l.customPatterns, patterns...)
	}
}

func WithEngine(engine Engine) Option {
	return func(l *loader) {
		if engine != "" {
			l.engine = engine
		}
	}
}

// WithFileName overrides the ignore file looked up in the root.
func WithFileName(name string) Option {
	return func(l *loader) {
		if name != "" {
			l.fileName = name
		}
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
