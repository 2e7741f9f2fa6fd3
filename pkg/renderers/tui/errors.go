package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownVariant is returned for a theme variant the manifest does
	// not declare.
	ErrUnknownVariant = errors.New("tui: unknown theme variant")
)
