package wizard

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/submit"
)

// Submit validates the current step and sends the record. On success the
// draft is cleared, the view navigates to the new record, and the submit
// control stays disabled. Rejections and network failures re-enable it and
// are returned as *submit.RejectedError or *submit.NetworkError.
//
// The lock is released for the duration of the request so tag edits and
// autosaves keep working.
func (c *Controller) Submit(ctx context.Context) (submit.Result, error) {
	c.mu.Lock()
	switch c.phase {
	case submitInFlight:
		c.mu.Unlock()
		return submit.Result{}, ErrSubmitInFlight
	case submitDone:
		c.mu.Unlock()
		return submit.Result{}, ErrSubmitted
	}
	if c.creator == nil {
		c.mu.Unlock()
		return submit.Result{}, errors.New("wizard: no submission backend configured")
	}
	if !c.validateLocked() {
		c.mu.Unlock()
		return submit.Result{}, ErrStepInvalid
	}

	record := c.recordLocked()
	payload, err := submit.BuildPayload(record, c.submitOptionsLocked())
	if err != nil {
		c.mu.Unlock()
		return submit.Result{}, err
	}
	c.phase = submitInFlight
	c.view.SetSubmitState(true, SubmitBusyLabel)
	c.mu.Unlock()

	c.logger.Info("submitting change record",
		zap.String("title", record.Title),
		zap.Int("systems", len(record.SystemsAffected)),
	)
	result, err := c.creator.Create(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		c.phase = submitDone
		c.autosave.Stop()
		if c.drafts != nil {
			if clearErr := c.drafts.Clear(); clearErr != nil {
				c.logger.Warn("draft clear failed", zap.Error(clearErr))
			}
		}
		c.view.Navigate(result.RedirectPath())
		return result, nil
	}

	c.phase = submitIdle
	var rejected *submit.RejectedError
	switch {
	case errors.As(err, &rejected) && submit.IsSecretRejection(err):
		c.view.ShowSecretWarning(rejected.Detail)
	case rejected != nil:
		c.view.Alert(rejected.Message())
	default:
		c.view.Alert("Network error: " + networkMessage(err))
	}
	c.view.SetSubmitState(false, SubmitLabel)
	return submit.Result{}, err
}

func (c *Controller) submitOptionsLocked() submit.Options {
	return submit.Options{
		EmailCopy: submit.Checkbox{
			Present: c.form.Has(changes.FieldEmailCopy),
			Checked: c.form.Bool(changes.FieldEmailCopy),
		},
		ConfirmNoSecrets: submit.Checkbox{
			Present: c.form.Has(changes.FieldConfirmNoSecrets),
			Checked: c.form.Bool(changes.FieldConfirmNoSecrets),
		},
	}
}

func networkMessage(err error) string {
	var netErr *submit.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Err.Error()
	}
	return err.Error()
}
