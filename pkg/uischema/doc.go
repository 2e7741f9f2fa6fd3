// Package uischema loads step layout documents and applies them to change
// form models. A layout splits the flat field list into ordered wizard steps
// and overrides per-field labels, help text, placeholders, and widgets, so
// the OpenAPI-derived model stays unaware of presentation.
package uischema
