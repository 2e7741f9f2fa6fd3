// Package wizard drives the multi-step change record form: step
// navigation, per-step validation, the systems and links tag lists, draft
// auto-save and restore, and submission.
//
// A Controller owns the wizard state and talks to the outside world through
// two seams: a binding.Form for control values and a View for everything the
// user sees. Both may be real terminal widgets or in-memory stand-ins.
package wizard
