package changes

import "strings"

// Field names shared by the draft payload, the multipart submission, and the
// form binding.
const (
	FieldTitle             = "title"
	FieldCategory          = "category"
	FieldSystemsAffected   = "systems_affected"
	FieldPlannedStart      = "planned_start"
	FieldPlannedEnd        = "planned_end"
	FieldImplementer       = "implementer"
	FieldImpactLevel       = "impact_level"
	FieldUserImpact        = "user_impact"
	FieldMaintenanceWindow = "maintenance_window"
	FieldBackoutPlan       = "backout_plan"
	FieldWhatChanged       = "what_changed"
	FieldTicketID          = "ticket_id"
	FieldLinks             = "links"
	FieldStatus            = "status"
	FieldOutcomeNotes      = "outcome_notes"
	FieldPostChangeIssues  = "post_change_issues"

	FieldEmailCopy        = "email_copy"
	FieldConfirmNoSecrets = "confirm_no_secrets"
)

// Control identifiers that are not record fields.
const (
	ControlSystemsInput    = "systems-input"
	ControlLinksInput      = "links-input"
	ControlBackoutRequired = "backout-required"
)

// DraftStorageKey is the single storage key holding the in-progress draft.
const DraftStorageKey = "changeDraft"

// DefaultStatus applies when a restored draft carries no status.
const DefaultStatus = StatusPlanned

// ScalarFields lists the single-valued record fields in submission order. The
// tag fields and the maintenance window radio are handled separately.
var ScalarFields = []string{
	FieldTitle,
	FieldCategory,
	FieldPlannedStart,
	FieldPlannedEnd,
	FieldImplementer,
	FieldImpactLevel,
	FieldUserImpact,
	FieldBackoutPlan,
	FieldWhatChanged,
	FieldTicketID,
	FieldStatus,
	FieldOutcomeNotes,
	FieldPostChangeIssues,
}

// Draft is the flat record persisted between sessions. Field tags match the
// keys written by the web wizard so drafts stay interchangeable.
type Draft struct {
	Title             string   `json:"title"`
	Category          string   `json:"category"`
	SystemsAffected   []string `json:"systems_affected"`
	PlannedStart      string   `json:"planned_start"`
	PlannedEnd        string   `json:"planned_end"`
	Implementer       string   `json:"implementer"`
	ImpactLevel       string   `json:"impact_level"`
	UserImpact        string   `json:"user_impact"`
	MaintenanceWindow *string  `json:"maintenance_window,omitempty"`
	BackoutPlan       string   `json:"backout_plan"`
	WhatChanged       string   `json:"what_changed"`
	TicketID          string   `json:"ticket_id"`
	Links             []string `json:"links"`
	Status            string   `json:"status"`
	OutcomeNotes      string   `json:"outcome_notes"`
	PostChangeIssues  string   `json:"post_change_issues"`
}

// Scalar returns the value of a single-valued field by name.
func (d Draft) Scalar(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return d.Title, true
	case FieldCategory:
		return d.Category, true
	case FieldPlannedStart:
		return d.PlannedStart, true
	case FieldPlannedEnd:
		return d.PlannedEnd, true
	case FieldImplementer:
		return d.Implementer, true
	case FieldImpactLevel:
		return d.ImpactLevel, true
	case FieldUserImpact:
		return d.UserImpact, true
	case FieldBackoutPlan:
		return d.BackoutPlan, true
	case FieldWhatChanged:
		return d.WhatChanged, true
	case FieldTicketID:
		return d.TicketID, true
	case FieldStatus:
		return d.Status, true
	case FieldOutcomeNotes:
		return d.OutcomeNotes, true
	case FieldPostChangeIssues:
		return d.PostChangeIssues, true
	default:
		return "", false
	}
}

// SetScalar assigns a single-valued field by name. Unknown names are ignored
// and reported as false.
func (d *Draft) SetScalar(name, value string) bool {
	switch name {
	case FieldTitle:
		d.Title = value
	case FieldCategory:
		d.Category = value
	case FieldPlannedStart:
		d.PlannedStart = value
	case FieldPlannedEnd:
		d.PlannedEnd = value
	case FieldImplementer:
		d.Implementer = value
	case FieldImpactLevel:
		d.ImpactLevel = value
	case FieldUserImpact:
		d.UserImpact = value
	case FieldBackoutPlan:
		d.BackoutPlan = value
	case FieldWhatChanged:
		d.WhatChanged = value
	case FieldTicketID:
		d.TicketID = value
	case FieldStatus:
		d.Status = value
	case FieldOutcomeNotes:
		d.OutcomeNotes = value
	case FieldPostChangeIssues:
		d.PostChangeIssues = value
	default:
		return false
	}
	return true
}

// MaintenanceWindowValue returns the selected maintenance window option.
func (d Draft) MaintenanceWindowValue() (string, bool) {
	if d.MaintenanceWindow == nil {
		return "", false
	}
	return *d.MaintenanceWindow, true
}

// Clone returns a copy that shares no slices or pointers with d.
func (d Draft) Clone() Draft {
	out := d
	out.SystemsAffected = cloneStrings(d.SystemsAffected)
	out.Links = cloneStrings(d.Links)
	if d.MaintenanceWindow != nil {
		v := *d.MaintenanceWindow
		out.MaintenanceWindow = &v
	}
	return out
}

// Canonical returns a copy of d with its enum fields mapped onto their
// canonical spelling. Drafts saved by other clients may use any case.
func (d Draft) Canonical() Draft {
	out := d.Clone()
	out.Category = NormalizeCategory(out.Category)
	out.ImpactLevel = NormalizeImpact(out.ImpactLevel)
	out.UserImpact = NormalizeUserImpact(out.UserImpact)
	out.Status = NormalizeStatus(out.Status)
	return out
}

// RequiresBackout reports whether an impact level makes the backout plan
// mandatory.
func RequiresBackout(impact string) bool {
	return impact == ImpactMedium || impact == ImpactHigh
}

// IsLink reports whether value satisfies the reference link prefix rule.
func IsLink(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
