// Package submit sends completed change records to the backend.
package submit

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/goliatone/go-changewizard/pkg/changes"
)

// Checkbox is an optional boolean control. Present is false when the form
// does not have the control at all, in which case nothing is sent.
type Checkbox struct {
	Present bool
	Checked bool
}

// Options carries the values that are part of the submission but not of the
// draft.
type Options struct {
	EmailCopy        Checkbox
	ConfirmNoSecrets Checkbox
}

// Payload is an encoded multipart/form-data body.
type Payload struct {
	Body        []byte
	ContentType string
}

type part struct {
	name  string
	value string
}

// orderedParts lists the form entries for d in submission order. Tag lists
// become one entry per tag and an unselected maintenance window is left out.
func orderedParts(d changes.Draft, opts Options) []part {
	var parts []part
	scalar := func(name string) {
		value, _ := d.Scalar(name)
		parts = append(parts, part{name, value})
	}

	scalar(changes.FieldTitle)
	scalar(changes.FieldCategory)
	for _, tag := range d.SystemsAffected {
		parts = append(parts, part{changes.FieldSystemsAffected, tag})
	}
	scalar(changes.FieldPlannedStart)
	scalar(changes.FieldPlannedEnd)
	scalar(changes.FieldImplementer)
	scalar(changes.FieldImpactLevel)
	scalar(changes.FieldUserImpact)
	if window, ok := d.MaintenanceWindowValue(); ok {
		parts = append(parts, part{changes.FieldMaintenanceWindow, window})
	}
	scalar(changes.FieldBackoutPlan)
	scalar(changes.FieldWhatChanged)
	scalar(changes.FieldTicketID)
	for _, link := range d.Links {
		parts = append(parts, part{changes.FieldLinks, link})
	}
	scalar(changes.FieldStatus)
	scalar(changes.FieldOutcomeNotes)
	scalar(changes.FieldPostChangeIssues)

	if opts.EmailCopy.Present {
		parts = append(parts, part{changes.FieldEmailCopy, boolString(opts.EmailCopy.Checked)})
	}
	if opts.ConfirmNoSecrets.Present {
		parts = append(parts, part{changes.FieldConfirmNoSecrets, boolString(opts.ConfirmNoSecrets.Checked)})
	}
	return parts
}

// BuildPayload encodes d as a multipart body.
func BuildPayload(d changes.Draft, opts Options) (Payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range orderedParts(d, opts) {
		if err := writer.WriteField(p.name, p.value); err != nil {
			return Payload{}, fmt.Errorf("submit: write field %s: %w", p.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Payload{}, fmt.Errorf("submit: close multipart body: %w", err)
	}
	return Payload{Body: buf.Bytes(), ContentType: writer.FormDataContentType()}, nil
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
