package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/goliatone/go-changewizard"
	"github.com/goliatone/go-changewizard/internal/config"
	"github.com/goliatone/go-changewizard/pkg/draft"
	"github.com/goliatone/go-changewizard/pkg/renderers/tui"
	"github.com/goliatone/go-changewizard/pkg/submit"
	"github.com/goliatone/go-changewizard/pkg/wizard"
)

var (
	errAborted     = errors.New("changewizard: aborted")
	errNotTerminal = errors.New("changewizard: stdin is not a terminal; run the wizard from an interactive shell")
)

func runWizard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	ctx := cmd.Context()
	session, ctrl, err := buildWizard(ctx, *cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	err = session.Run(ctx, ctrl)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		logger.Info("wizard aborted", zap.Bool("autosave_pending", ctrl.AutosavePending()))
		return errAborted
	default:
		return fmt.Errorf("wizard failed: %w", err)
	}
}

// buildWizard wires the form pipeline, terminal session, submission client,
// and draft store into a controller.
func buildWizard(ctx context.Context, c config.Config, out io.Writer, log *zap.Logger, extra ...tui.Option) (*tui.Session, *wizard.Controller, error) {
	layout, err := changewizard.Layout(ctx, changewizard.Sources{
		OpenAPI:   c.Schema.OpenAPI,
		LayoutDir: c.Schema.Layout,
	}, log.Named("form"))
	if err != nil {
		return nil, nil, err
	}

	theme, err := tui.ResolveTheme(c.UI.ThemeVariant)
	if err != nil {
		return nil, nil, err
	}
	sessionOpts := append([]tui.Option{
		tui.WithOutput(out),
		tui.WithTheme(theme),
		tui.WithBaseURL(c.Server.BaseURL),
		tui.WithLogger(log.Named("tui")),
	}, extra...)
	session, err := tui.NewSession(layout, sessionOpts...)
	if err != nil {
		return nil, nil, err
	}

	client, err := newSubmitClient(c, log)
	if err != nil {
		return nil, nil, err
	}

	store, err := newDraftStore(c, log)
	if err != nil {
		return nil, nil, err
	}

	ctrl, err := wizard.New(layout, wizard.NewMemoryForm(layout), session,
		wizard.WithDrafts(store),
		wizard.WithCreator(client),
		wizard.WithConfirmer(session),
		wizard.WithAutosaveDelay(c.Draft.Autosave),
		wizard.WithLogger(log.Named("wizard")),
	)
	if err != nil {
		return nil, nil, err
	}
	return session, ctrl, nil
}

func newSubmitClient(c config.Config, log *zap.Logger) (*submit.Client, error) {
	opts := []submit.Option{
		submit.WithTimeout(c.Server.Timeout),
		submit.WithLogger(log.Named("submit")),
	}
	if c.Server.Session != "" {
		opts = append(opts, submit.WithSessionCookie(c.Server.SessionCookie, c.Server.Session))
	}
	return submit.NewClient(c.Server.BaseURL, opts...)
}

func newDraftStore(c config.Config, log *zap.Logger) (*draft.Store, error) {
	path := c.Draft.Path
	if path == "" {
		var err error
		if path, err = draft.DefaultPath(); err != nil {
			return nil, err
		}
	}
	storage, err := draft.NewFileStorage(path, draft.WithStorageLogger(log.Named("storage")))
	if err != nil {
		return nil, err
	}
	return draft.NewStore(storage, draft.WithLogger(log.Named("draft"))), nil
}
