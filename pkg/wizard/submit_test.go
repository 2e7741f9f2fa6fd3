package wizard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/submit"
	"github.com/goliatone/go-changewizard/pkg/testsupport"
)

func submitHarness(t *testing.T, baseURL string) *harness {
	t.Helper()
	client, err := submit.NewClient(baseURL)
	require.NoError(t, err)
	h := newHarness(t, nil, WithCreator(client))
	h.fillAll(t)
	require.NoError(t, h.ctrl.SaveDraft())
	require.NoError(t, h.ctrl.ShowStep(4))
	return h
}

func TestSubmitSuccessRedirectsAndClearsDraft(t *testing.T) {
	backend := testsupport.NewChangesBackend(t, http.StatusOK, `{"success": true, "change_id": 42}`)
	h := submitHarness(t, backend.URL())
	require.NotEmpty(t, h.storage.Snapshot())

	result, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", result.ChangeID)
	assert.Equal(t, "/changes/42", h.view.navigated)
	assert.Empty(t, h.storage.Snapshot())
	assert.True(t, h.view.submitDisabled, "control stays disabled after success")
	assert.Equal(t, SubmitBusyLabel, h.view.submitLabel)
	assert.False(t, h.ctrl.AutosavePending())

	_, err = h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitted)
	assert.Equal(t, 1, backend.Hits())
}

func TestSubmitSecretRejectionShowsWarning(t *testing.T) {
	detail := "potential secret detected in what_changed"
	h := submitHarness(t, testsupport.NewChangesBackend(t, http.StatusBadRequest, `{"detail": "`+detail+`"}`).URL())
	h.view.resetAlerts()

	_, err := h.ctrl.Submit(context.Background())
	assert.True(t, submit.IsSecretRejection(err))
	assert.Equal(t, detail, h.view.secret)
	assert.Empty(t, h.view.Alerts(), "generic failure message is not shown")
	assert.False(t, h.view.submitDisabled)
	assert.Equal(t, SubmitLabel, h.view.submitLabel)
	assert.Empty(t, h.view.navigated)
	assert.NotEmpty(t, h.storage.Snapshot(), "draft survives a rejection")
}

func TestSubmitGenericRejection(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"with detail":    {`{"detail": "Invalid category"}`, "Error: Invalid category"},
		"without detail": {`{}`, "Error: Failed to create change record"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := submitHarness(t, testsupport.NewChangesBackend(t, http.StatusBadRequest, tc.body).URL())
			h.view.resetAlerts()

			_, err := h.ctrl.Submit(context.Background())
			var rejected *submit.RejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, []string{tc.want}, h.view.Alerts())
			assert.Empty(t, h.view.secret)
			assert.False(t, h.view.submitDisabled)
			assert.Equal(t, SubmitLabel, h.view.submitLabel)
		})
	}
}

func TestSubmitNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	h := submitHarness(t, base)
	h.view.resetAlerts()

	_, err := h.ctrl.Submit(context.Background())
	var netErr *submit.NetworkError
	require.ErrorAs(t, err, &netErr)
	alerts := h.view.Alerts()
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "Network error: ")
	assert.False(t, h.view.submitDisabled)
	assert.Equal(t, SubmitLabel, h.view.submitLabel)
}

func TestSubmitInvalidStepSendsNothing(t *testing.T) {
	backend := testsupport.NewChangesBackend(t, http.StatusOK, `{"change_id": 1}`)
	client, err := submit.NewClient(backend.URL())
	require.NoError(t, err)
	h := newHarness(t, nil, WithCreator(client))

	_, err = h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrStepInvalid)
	assert.Zero(t, backend.Hits())
	assert.Contains(t, h.view.Alerts(), MessageSystemsRequired)
}

type blockingCreator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingCreator) Create(ctx context.Context, payload submit.Payload) (submit.Result, error) {
	close(b.started)
	<-b.release
	return submit.Result{ChangeID: "7"}, nil
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	creator := &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}
	h := newHarness(t, nil, WithCreator(creator))
	h.fillAll(t)
	require.NoError(t, h.ctrl.ShowStep(4))

	done := make(chan error, 1)
	go func() {
		_, err := h.ctrl.Submit(context.Background())
		done <- err
	}()

	select {
	case <-creator.started:
	case <-time.After(time.Second):
		t.Fatalf("submission never started")
	}

	assert.True(t, h.ctrl.Snapshot().Submitting)
	_, err := h.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	// Tag edits stay possible while the request is in flight.
	h.addTag(t, TagSystems, "db-03")
	assert.Contains(t, h.ctrl.Snapshot().Systems, "db-03")

	close(creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, "/changes/7", h.view.navigated)
}

func TestSubmitSendsCheckboxes(t *testing.T) {
	backend := testsupport.NewChangesBackend(t, http.StatusOK, `{"change_id": 5}`)
	h := submitHarness(t, backend.URL())
	h.ctrl.FieldChanged(changes.FieldConfirmNoSecrets, "true")

	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	forms := backend.Forms()
	require.Len(t, forms, 1)
	values := forms[0]
	assert.Equal(t, []string{"true"}, values[changes.FieldConfirmNoSecrets])
	assert.Equal(t, []string{"false"}, values[changes.FieldEmailCopy])
	assert.Equal(t, []string{"db-01", "db-02"}, values[changes.FieldSystemsAffected])
	assert.Equal(t, []string{changes.MaintenanceWindowYes}, values[changes.FieldMaintenanceWindow])
	assert.Equal(t, []string{changes.StatusPlanned}, values[changes.FieldStatus])
	assert.NotEmpty(t, backend.Headers()[0].Get("X-Request-ID"))
}
