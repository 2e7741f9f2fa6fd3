package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/render"
	"github.com/goliatone/go-changewizard/pkg/render/template"
	"github.com/goliatone/go-changewizard/pkg/wizard"
)

// Session is the terminal front end of the wizard. It implements
// wizard.View and wizard.Confirmer, and Run drives a controller through
// prompts.
type Session struct {
	driver    PromptDriver
	out       io.Writer
	theme     Theme
	templates template.TemplateRenderer
	logger    *zap.Logger
	baseURL   string
	layout    wizard.Layout

	mu             sync.Mutex
	current        int
	progress       int
	started        bool
	tags           map[wizard.TagKind][]wizard.Chip
	submitDisabled bool
	submitLabel    string
	redirect       string
}

var (
	_ wizard.View      = (*Session)(nil)
	_ wizard.Confirmer = (*Session)(nil)
)

// NewSession builds a session for layout. Without options it prompts
// through survey on the real terminal and prints to stdout.
func NewSession(layout wizard.Layout, options ...Option) (*Session, error) {
	if layout.Len() == 0 {
		return nil, errors.New("tui: layout has no steps")
	}
	s := &Session{
		out:         os.Stdout,
		theme:       ThemeFromSelection(nil),
		logger:      zap.NewNop(),
		layout:      layout,
		tags:        make(map[wizard.TagKind][]wizard.Chip),
		submitLabel: wizard.SubmitLabel,
	}
	if resolved, err := ResolveTheme(VariantDefault); err == nil {
		s.theme = resolved
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	var err error
	if s.driver == nil {
		s.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}
	if s.templates == nil {
		s.templates, err = NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("tui: templates: %w", err)
		}
	}
	return s, nil
}

// ActivateStep records the visible step.
func (s *Session) ActivateStep(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = n
}

// UpdateProgress records how many steps the progress bar fills.
func (s *Session) UpdateProgress(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = n
}

// ScrollToTop prints the header of the active step.
func (s *Session) ScrollToTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true

	step, ok := s.layout.Step(s.current)
	if !ok {
		return
	}
	s.renderLocked(templateHeader, map[string]any{
		"rule":        strings.Repeat(s.theme.Rule, 48),
		"title":       s.layout.Title,
		"progress":    s.progressBar(),
		"current":     strconv.Itoa(step.Index),
		"total":       strconv.Itoa(s.layout.Len()),
		"icon":        step.Icon,
		"step":        step.Title,
		"description": step.Description,
	})
}

func (s *Session) progressBar() string {
	var b strings.Builder
	for i := 1; i <= s.layout.Len(); i++ {
		if i <= s.progress {
			b.WriteString(s.theme.StepDone)
		} else {
			b.WriteString(s.theme.StepTodo)
		}
	}
	return b.String()
}

// RenderTags keeps the chips for kind and prints them once the wizard is on
// screen.
func (s *Session) RenderTags(kind wizard.TagKind, chips []wizard.Chip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[kind] = append([]wizard.Chip(nil), chips...)
	if s.started {
		s.printTagsLocked(kind)
	}
}

func (s *Session) printTagsLocked(kind wizard.TagKind) {
	label := string(kind)
	if f, ok := s.layout.Field(kind.Field()); ok && f.Label != "" {
		label = f.Label
	}
	chips := make([]map[string]any, 0, len(s.tags[kind]))
	for _, chip := range s.tags[kind] {
		chips = append(chips, map[string]any{
			"number": strconv.Itoa(chip.Index + 1),
			"label":  chip.Label,
		})
	}
	s.renderLocked(templateTags, map[string]any{
		"label": label,
		"chips": chips,
		"open":  s.theme.ChipOpen,
		"close": s.theme.ChipClose,
	})
}

// Alert prints message with the error prefix.
func (s *Session) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", s.theme.ErrorPrefix, render.PlainText(message))
}

// SetSubmitState records the submit control state shown in the action menu.
func (s *Session) SetSubmitState(disabled bool, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitDisabled = disabled
	s.submitLabel = label
	if disabled {
		fmt.Fprintf(s.out, "%s %s\n", s.theme.InfoPrefix, label)
	}
}

// ShowSecretWarning prints the secret-detection warning with the server's
// detail.
func (s *Session) ShowSecretWarning(detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked(templateSecret, map[string]any{
		"prefix": s.theme.ErrorPrefix,
		"detail": detail,
	})
}

// Navigate announces the created record.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = path
	fmt.Fprintf(s.out, "%s Change record created: %s%s\n", s.theme.InfoPrefix, strings.TrimRight(s.baseURL, "/"), path)
}

// Confirm asks a yes/no question, defaulting to yes.
func (s *Session) Confirm(ctx context.Context, message string) (bool, error) {
	return s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
}

// Redirect returns the record path announced by Navigate, if any.
func (s *Session) Redirect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirect
}

func (s *Session) submitControl() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitDisabled, s.submitLabel
}

func (s *Session) info(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", s.theme.InfoPrefix, fmt.Sprintf(format, args...))
}

func (s *Session) render(name string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked(name, data)
}

func (s *Session) renderLocked(name string, data map[string]any) {
	if _, err := s.templates.RenderTemplate(name, data, s.out); err != nil {
		s.logger.Warn("render screen", zap.String("template", name), zap.Error(err))
	}
}
