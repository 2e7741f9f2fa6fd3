package tui

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message     string
	Default     string
	Help        string
	Placeholder string
	Validator   func(string) error
}

func (cfg InputConfig) help() string {
	switch {
	case cfg.Placeholder == "":
		return cfg.Help
	case cfg.Help == "":
		return "e.g. " + cfg.Placeholder
	default:
		return strings.TrimSpace(cfg.Help) + " (e.g. " + cfg.Placeholder + ")"
	}
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal prompts so the session can be driven
// by a script in tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
}

// surveyDriver prompts on the process terminal.
type surveyDriver struct {
	opts []survey.AskOpt
}

func newSurveyDriver(opts ...survey.AskOpt) (PromptDriver, error) {
	return &surveyDriver{opts: opts}, nil
}

// ask runs one prompt and maps Ctrl+C to ErrAborted.
func ask[T any](ctx context.Context, prompt survey.Prompt, opts ...survey.AskOpt) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			err = ErrAborted
		}
		return answer, err
	}
	return answer, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	opts := d.opts
	if check := cfg.Validator; check != nil {
		opts = append(slices.Clip(opts), survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return check(s)
		}))
	}
	return ask[string](ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.help()}, opts...)
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return ask[bool](ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, d.opts...)
}

// Select answers with the chosen index, or -1 when the answer is not one of
// the options.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex > 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	choice, err := ask[string](ctx, prompt, d.opts...)
	if err != nil {
		return 0, err
	}
	return slices.Index(cfg.Options, choice), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return ask[string](ctx, &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, d.opts...)
}
