package wizard

import "errors"

var (
	ErrUnknownStep    = errors.New("wizard: unknown step")
	ErrStepInvalid    = errors.New("wizard: current step is invalid")
	ErrSubmitInFlight = errors.New("wizard: submission already in progress")
	ErrSubmitted      = errors.New("wizard: change record already created")
	ErrInvalidLink    = errors.New("wizard: link must start with http:// or https://")
	ErrUnknownTagKind = errors.New("wizard: unknown tag list")
	ErrTagIndex       = errors.New("wizard: tag index out of range")
	ErrNoConfirmer    = errors.New("wizard: no confirmer configured")
)

// User-facing messages.
const (
	MessageSystemsRequired = "Please add at least one affected system"
	MessageBackoutRequired = "Backout plan is required for Medium and High impact changes"
	MessageRequiredFields  = "Please fill in all required fields"
	MessageInvalidLink     = "Please enter a valid URL starting with http:// or https://"
	MessageRestorePrompt   = "You have a saved draft. Would you like to restore it?"
	SubmitLabel            = "Create Change Record"
	SubmitBusyLabel        = "Creating..."
)
