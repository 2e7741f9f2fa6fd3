package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/render/template"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput redirects screen output. Defaults to os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithTheme applies message prefixes and glyphs.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithTemplateRenderer swaps the engine used for screens.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// WithBaseURL is prefixed to the record path announced after submission.
func WithBaseURL(base string) Option {
	return func(s *Session) {
		s.baseURL = base
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
