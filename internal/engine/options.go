package engine

import "github.com/dshills/clack/internal/config"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
// The cursor starts at the beginning of the document.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTypewriter sets the margin and pagination rules.
// Invalid values are replaced by their defaults.
func WithTypewriter(cfg config.TypewriterConfig) Option {
	return func(e *Engine) {
		cfg.Validate()
		e.typewriter = cfg
	}
}
