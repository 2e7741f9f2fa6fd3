package wizard

import "context"

// View renders wizard state. The Controller calls it while holding its
// lock, so implementations must not call back into the Controller.
type View interface {
	// ActivateStep shows panel n and hides the others.
	ActivateStep(n int)
	// UpdateProgress marks progress indicators 1..n active.
	UpdateProgress(n int)
	ScrollToTop()
	RenderTags(kind TagKind, chips []Chip)
	// Alert shows a blocking message.
	Alert(message string)
	SetSubmitState(disabled bool, label string)
	ShowSecretWarning(detail string)
	Navigate(path string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Confirm calls fn.
func (fn ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return fn(ctx, message)
}
